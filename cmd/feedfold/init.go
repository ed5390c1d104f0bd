package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/feedfold/feedfold/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample run file",
		Long: `Init writes a commented sample run file to the current directory.

The generated file includes:
- Example source URLs and output target
- Merged feed metadata (title, description, link)
- Commented filter rule examples

Examples:
  # Create .feedfold.yml in current directory
  feedfold init

  # Create the run file at a specific path
  feedfold init -o reads.yml

  # Force overwrite an existing file
  feedfold init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output path for the run file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing run file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if force {
		if err := os.WriteFile(outputPath, []byte(config.SampleFile), 0600); err != nil {
			return fmt.Errorf("write run file: %w", err)
		}
	} else if err := config.WriteSample(outputPath); err != nil {
		return fmt.Errorf("%w (pass -f to overwrite)", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created run file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit it to set your sources, output target, and filter rules,")
	fmt.Fprintln(cmd.OutOrStdout(), "then run: feedfold merge")

	return nil
}
