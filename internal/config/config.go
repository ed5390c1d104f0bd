package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTitle is used when neither the run file nor the flags
	// name the merged feed.
	DefaultTitle = "Merged feed"

	// DefaultTimeout of zero means no per-request timeout: the atomic
	// fetch model accepts that a hung source hangs the run. Set a
	// timeout explicitly to cap individual requests.
	DefaultTimeout = 0 * time.Second

	// DefaultLimit of zero runs one fetch goroutine per source with no
	// concurrency cap. Set a limit for very large source lists.
	DefaultLimit = 0

	// AppName is the application name used for XDG directory paths.
	AppName = "feedfold"
)

// Rule is one filter rule from the run file, applied in list order.
// Later rules override earlier ones whenever they express an opinion.
type Rule struct {
	// Type names the built-in rule (include-title, exclude-title,
	// include-link-host, exclude-link-host, exclude-older-than).
	Type string `yaml:"type"`

	// Value is the rule argument: a keyword, a host, or a duration.
	Value string `yaml:"value"`
}

// Config holds all options for one merge run. Populated from CLI flags
// and the YAML run file, then handed to the pipeline unchanged.
type Config struct {
	// Inputs is the list of source feed URLs. Empty means no fetch
	// happens and the run operates on an empty item stream.
	Inputs []string

	// Output is the path the merged Atom document is written to.
	// Empty means no write occurs; "-" writes to stdout.
	Output string

	// Title is the merged feed's plaintext title.
	Title string

	// Description is the merged feed's plaintext description.
	Description string

	// Link is the merged feed's site URL. Optional.
	Link string

	// Rules is the ordered filter rule chain.
	Rules []Rule

	// Timeout caps each HTTP request. Zero means no timeout.
	Timeout time.Duration

	// Limit caps concurrent fetches. Zero means one goroutine per
	// source, unbounded.
	Limit int

	// UserAgent overrides the HTTP User-Agent header when non-empty.
	UserAgent string

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is the explicit run file path. Empty triggers the
	// default search (current directory, then XDG config directory).
	ConfigFilePath string

	// DBDir is the directory of the run archive database. When set,
	// each run's merged items are recorded for `feedfold history`.
	// Empty disables archiving.
	DBDir string

	// SummaryFile is the path of the optional Markdown run summary.
	// Empty disables the summary; "-" writes it to stdout.
	SummaryFile string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Title:   DefaultTitle,
		Timeout: DefaultTimeout,
		Limit:   DefaultLimit,
	}
}

// XDGConfigDir returns the XDG config directory for feedfold.
// On Linux: ~/.config/feedfold
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for feedfold. The run
// archive lives here unless DBDir points elsewhere.
// On Linux: ~/.local/share/feedfold
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem
// found. Called once after flag and file parsing, before the run.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Limit < 0 {
		return ErrInvalidLimit
	}

	for _, input := range c.Inputs {
		u, err := url.Parse(input)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &InvalidInputError{URL: input}
		}
	}

	return nil
}
