package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/feedfold/feedfold/internal/archive"
	"github.com/feedfold/feedfold/internal/config"
	"github.com/feedfold/feedfold/internal/fetch"
	"github.com/feedfold/feedfold/internal/filter"
	"github.com/feedfold/feedfold/internal/log"
	"github.com/feedfold/feedfold/internal/output"
	"github.com/feedfold/feedfold/internal/pipeline"
	"github.com/feedfold/feedfold/internal/report"
)

// NewMergeCmd creates the merge command.
func NewMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [source-url...]",
		Short: "Fetch, filter, deduplicate, and merge the configured feeds",
		Long: `Merge fetches every source concurrently, applies the filter chain in
order (later rules override earlier ones), drops items already seen
under any of the three identity keys (id, case-insensitive title,
alternate link), and writes the survivors as one Atom feed ordered by
publish time ascending.

Sources can be given as arguments or in the run file; arguments win.
Without an output target the run performs all stages but writes
nothing, which is occasionally useful for dry runs.

Examples:
  # Merge two feeds into a file
  feedfold merge https://a.example.com/feed https://b.example.com/rss -o merged.xml

  # Use the run file found in the current or XDG config directory
  feedfold merge

  # Merge to stdout with a per-request timeout
  feedfold merge -c reads.yml -o - --timeout 30s

  # Record the run in the archive and write a Markdown summary
  feedfold merge -c reads.yml --archive --summary run.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runMergeCmd,
	}

	// Run file
	cmd.Flags().StringP("config", "c", "",
		"Run file path (default: .feedfold.yml in current or XDG config directory)")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Write the merged Atom feed to this path (\"-\" for stdout; empty: no write)")
	cmd.Flags().String("title", "",
		"Merged feed title")
	cmd.Flags().String("description", "",
		"Merged feed description")
	cmd.Flags().String("link", "",
		"Merged feed site URL")

	// Fetch behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout (0: none; a hung source then hangs the run)")
	cmd.Flags().IntP("limit", "l", config.DefaultLimit,
		"Maximum concurrent fetches (0: one goroutine per source)")
	cmd.Flags().String("user-agent", "",
		"Override the HTTP User-Agent header")

	// Archive and summary flags
	cmd.Flags().Bool("archive", false,
		"Record the run in the archive database")
	cmd.Flags().String("db-dir", "",
		"Archive database directory (default: XDG data directory)")
	cmd.Flags().String("summary", "",
		"Write a Markdown run summary to this path (\"-\" for stdout)")

	return cmd
}

// runMergeCmd executes the merge command.
func runMergeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Handle interrupt signals for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runMerge(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the run file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	title, err := cmd.Flags().GetString("title")
	if err != nil {
		return nil, err
	}
	if title != "" {
		cfg.Title = title
	}

	cfg.Description, err = cmd.Flags().GetString("description")
	if err != nil {
		return nil, err
	}

	cfg.Link, err = cmd.Flags().GetString("link")
	if err != nil {
		return nil, err
	}

	cfg.Output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Limit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.SummaryFile, err = cmd.Flags().GetString("summary")
	if err != nil {
		return nil, err
	}

	useArchive, err := cmd.Flags().GetBool("archive")
	if err != nil {
		return nil, err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if useArchive || dbDir != "" {
		if dbDir == "" {
			dbDir = config.XDGDataDir()
		}
		cfg.DBDir = dbDir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Positional arguments are source URLs and win over the run file.
	cfg.Inputs = args

	// Load the run file when one exists. An explicitly named file that
	// is missing is an error; an absent default file is fine.
	path, err := config.FindFile(cfg.ConfigFilePath)
	switch {
	case err == nil:
		file, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load run file %s: %w", path, err)
		}
		cfg.Apply(file)
	case errors.Is(err, config.ErrConfigNotFound) && cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("run file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// runMerge executes the merge run.
func runMerge(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting merge",
		"sources", len(cfg.Inputs),
		"output", cfg.Output,
		"filters", len(cfg.Rules),
	)

	// The run's single shared HTTP client; configuration-immutable,
	// so concurrent use by all fetch goroutines is safe.
	client := fetch.NewClient(cfg.Timeout)
	fetcher := fetch.New(client,
		fetch.WithLimit(cfg.Limit),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLogger(logger),
	)

	chain, err := buildChain(cfg.Rules)
	if err != nil {
		return err
	}

	meta := output.Metadata{
		Title:       cfg.Title,
		Description: cfg.Description,
		Link:        cfg.Link,
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewFetchStep(fetcher, cfg.Inputs),
		pipeline.NewFilterStep(chain),
		pipeline.NewDedupStep(),
		pipeline.NewMergeStep(),
		pipeline.NewWriteStep(output.NewWriter(), cfg.Output, meta),
	)

	run := pipeline.NewRun()
	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	logger.Info("merge complete",
		"fetched", run.Stats.Fetched,
		"filtered", run.Stats.Filtered,
		"duplicates", run.Stats.Duplicates,
		"kept", run.Stats.Kept,
	)

	if cfg.DBDir != "" {
		if err := recordRun(ctx, cfg, run); err != nil {
			return err
		}
		logger.Info("run archived", "dir", cfg.DBDir)
	}

	if cfg.SummaryFile != "" {
		summary := report.Summary{
			Title:       cfg.Title,
			GeneratedAt: time.Now(),
			Sources:     cfg.Inputs,
			Stats:       run.Stats,
			Output:      cfg.Output,
		}
		if err := report.WriteFile(cfg.SummaryFile, summary); err != nil {
			return err
		}
	}

	return nil
}

// buildChain constructs the filter chain from the configured rules,
// preserving definition order.
func buildChain(rules []config.Rule) (*filter.Chain, error) {
	filters := make([]filter.Filter, 0, len(rules))
	for _, r := range rules {
		f, err := filter.NewRule(r.Type, r.Value)
		if err != nil {
			return nil, fmt.Errorf("filter rule: %w", err)
		}
		filters = append(filters, f)
	}
	return filter.NewChain(filters...), nil
}

// recordRun appends the completed run to the archive database.
func recordRun(ctx context.Context, cfg *config.Config, run *pipeline.Run) error {
	db, err := archive.Open(cfg.DBDir, archive.DefaultOptions())
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer db.Close() //nolint:errcheck // Close error on exit path is unactionable

	if _, err := db.RecordRun(ctx, cfg.Title, run.Stats, run.Items); err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	return nil
}
