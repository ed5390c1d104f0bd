package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/feedfold/feedfold/internal/archive"
	"github.com/feedfold/feedfold/internal/config"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List archived merge runs",
		Long: `History lists the merge runs recorded with --archive, newest first.
Given a run id it prints that run's merged items instead.

Examples:
  # List the most recent runs
  feedfold history

  # Show the items of run 3
  feedfold history 3

  # Use an archive in a non-default location
  feedfold history --db-dir ./archive`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Archive database directory (default: XDG data directory)")
	cmd.Flags().IntP("limit", "l", 20,
		"Maximum number of runs to list (0: all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	db, err := archive.Open(dbDir, archive.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer db.Close() //nolint:errcheck // Read-only access; close error is unactionable

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		return printRunItems(cmd, db, runID)
	}

	return printRuns(cmd, db, limit)
}

// printRuns lists archived runs in a table, newest first.
func printRuns(cmd *cobra.Command, db *archive.Archive, limit int) error {
	records, err := db.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived runs. Run `feedfold merge --archive` first.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tTITLE\tFETCHED\tFILTERED\tDUPLICATES\tKEPT")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Title,
			r.Stats.Fetched,
			r.Stats.Filtered,
			r.Stats.Duplicates,
			r.Stats.Kept,
		)
	}
	return w.Flush()
}

// printRunItems prints the merged items of one archived run in output order.
func printRunItems(cmd *cobra.Command, db *archive.Archive, runID int64) error {
	items, err := db.Items(cmd.Context(), runID)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Run %d kept no items.\n", runID)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PUBLISHED\tTITLE\tLINK")
	for _, item := range items {
		published := ""
		if !item.Published.IsZero() {
			published = item.Published.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", published, item.Title, item.AlternateLink())
	}
	return w.Flush()
}
