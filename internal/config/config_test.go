package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig verifies the defaults. Changes to defaults should be
// intentional; this test documents them.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Title is 'Merged feed'", func(t *testing.T) {
		t.Parallel()
		if cfg.Title != "Merged feed" {
			t.Errorf("expected Title 'Merged feed', got %q", cfg.Title)
		}
	})

	t.Run("default Timeout is zero (no timeout)", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 0 {
			t.Errorf("expected zero Timeout, got %v", cfg.Timeout)
		}
	})

	t.Run("default Limit is zero (unbounded)", func(t *testing.T) {
		t.Parallel()
		if cfg.Limit != 0 {
			t.Errorf("expected zero Limit, got %d", cfg.Limit)
		}
	})

	t.Run("default Output is empty (no write)", func(t *testing.T) {
		t.Parallel()
		if cfg.Output != "" {
			t.Errorf("expected empty Output, got %q", cfg.Output)
		}
	})
}

// TestConfigValidate tests each validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := NewConfig().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no inputs is valid", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Inputs = nil
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("negative timeout is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Timeout = -time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Limit = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("expected ErrInvalidLimit, got %v", err)
		}
	})

	t.Run("non-http input is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Inputs = []string{"ftp://example.com/feed"}

		var invalid *InvalidInputError
		if err := cfg.Validate(); !errors.As(err, &invalid) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("relative input is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Inputs = []string{"feed.xml"}

		var invalid *InvalidInputError
		if err := cfg.Validate(); !errors.As(err, &invalid) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("https inputs are accepted", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Inputs = []string{"https://example.com/feed.atom", "http://example.org/rss"}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
