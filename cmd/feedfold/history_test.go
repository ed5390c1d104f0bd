package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/feedfold/feedfold/internal/archive"
	"github.com/feedfold/feedfold/internal/model"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history [run-id]" {
			t.Errorf("expected use 'history [run-id]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has db-dir flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("db-dir") == nil {
			t.Fatal("expected db-dir flag")
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
	})
}

// seedArchive records two runs in a fresh archive under dir and
// returns the second run's id.
func seedArchive(t *testing.T, dir string) int64 {
	t.Helper()

	db, err := archive.Open(dir, archive.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx := context.Background()
	if _, err := db.RecordRun(ctx, "Morning reads", model.RunStats{
		Sources: 2, Fetched: 5, Filtered: 1, Duplicates: 1, Kept: 3,
	}, nil); err != nil {
		t.Fatalf("failed to record first run: %v", err)
	}

	items := []model.Item{
		{
			ID:        "urn:example:1",
			Title:     "Generics in practice",
			Links:     []model.Link{{Href: "http://example.com/generics", Rel: model.RelAlternate}},
			Published: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:    "urn:example:2",
			Title: "Iterators landed",
		},
	}
	runID, err := db.RecordRun(ctx, "Evening reads", model.RunStats{
		Sources: 1, Fetched: 2, Kept: 2,
	}, items)
	if err != nil {
		t.Fatalf("failed to record second run: %v", err)
	}
	return runID
}

// TestRunHistoryCmd tests the history command execution.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists archived runs newest first", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		seedArchive(t, tmpDir)

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", tmpDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		evening := strings.Index(out, "Evening reads")
		morning := strings.Index(out, "Morning reads")
		if evening < 0 || morning < 0 {
			t.Fatalf("expected both runs listed, got %q", out)
		}
		if evening > morning {
			t.Errorf("expected newest run first, got %q", out)
		}
	})

	t.Run("honors the limit flag", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		seedArchive(t, tmpDir)

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", tmpDir, "--limit", "1"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Evening reads") {
			t.Errorf("expected newest run in output, got %q", out)
		}
		if strings.Contains(out, "Morning reads") {
			t.Errorf("expected older run cut off, got %q", out)
		}
	})

	t.Run("prints the items of one run", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		runID := seedArchive(t, tmpDir)

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", tmpDir, strconv.FormatInt(runID, 10)})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Generics in practice") {
			t.Errorf("expected item title in output, got %q", out)
		}
		if !strings.Contains(out, "http://example.com/generics") {
			t.Errorf("expected alternate link in output, got %q", out)
		}
	})

	t.Run("rejects a non-numeric run id", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		seedArchive(t, tmpDir)

		cmd := NewHistoryCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs([]string{"--db-dir", tmpDir, "latest"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for non-numeric run id")
		}
		if !strings.Contains(err.Error(), "invalid run id") {
			t.Errorf("expected invalid run id error, got %v", err)
		}
	})

	t.Run("fails for an unknown run id", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		seedArchive(t, tmpDir)

		cmd := NewHistoryCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs([]string{"--db-dir", tmpDir, "9999"})

		if err := cmd.Execute(); err == nil {
			t.Fatal("expected error for unknown run id")
		}
	})

	t.Run("fails when no archive exists", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs([]string{"--db-dir", t.TempDir()})

		if err := cmd.Execute(); err == nil {
			t.Fatal("expected error when archive is missing")
		}
	})

	t.Run("reports an empty archive", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		db, err := archive.Open(tmpDir, archive.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open archive: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("failed to close archive: %v", err)
		}

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", tmpDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No archived runs") {
			t.Errorf("expected empty archive notice, got %q", buf.String())
		}
	})
}
