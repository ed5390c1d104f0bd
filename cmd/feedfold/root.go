// Package main provides the entry point for the feedfold CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for feedfold.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedfold",
		Short: "Merge RSS/Atom feeds into one deduplicated Atom feed",
		Long: `feedfold fetches every configured syndication source, runs the items
through an ordered filter chain, removes duplicates seen under any of
three identity keys (id, case-insensitive title, alternate link), and
writes the survivors as one Atom feed ordered by publish time.

A run either completes fully or fails as a whole: any unreachable or
unparsable source aborts the run and nothing is written.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewMergeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
