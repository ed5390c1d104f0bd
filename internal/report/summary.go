package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/feedfold/feedfold/internal/model"
)

// Summary describes one completed merge run.
type Summary struct {
	// Title is the merged feed's title.
	Title string

	// GeneratedAt is when the run finished.
	GeneratedAt time.Time

	// Sources lists the configured source URLs.
	Sources []string

	// Stats holds the run's counters.
	Stats model.RunStats

	// Output is the path the merged feed was written to, if any.
	Output string
}

// MarkdownWriter renders run summaries as Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the summary.
func (w *MarkdownWriter) Write(s Summary) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Merge run: " + s.Title)
	md.PlainText("")
	md.PlainText("Generated " + s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	md.H2("Items")
	md.Table(markdown.TableSet{
		Header: []string{"Stage", "Count"},
		Rows: [][]string{
			{"Fetched", strconv.Itoa(s.Stats.Fetched)},
			{"Dropped by filters", strconv.Itoa(s.Stats.Filtered)},
			{"Dropped as duplicates", strconv.Itoa(s.Stats.Duplicates)},
			{"**In merged feed**", "**" + strconv.Itoa(s.Stats.Kept) + "**"},
		},
	})
	md.PlainText("")

	md.H2("Sources")
	if len(s.Sources) == 0 {
		md.PlainText("No sources configured; the merged feed is empty.")
	} else {
		md.BulletList(s.Sources...)
	}
	md.PlainText("")

	if s.Output != "" {
		md.PlainText("Merged feed written to `" + s.Output + "`.")
	} else {
		md.PlainText("No output target configured; nothing was written.")
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("render run summary: %w", err)
	}
	return nil
}

// WriteFile renders the summary to a file path, creating parent
// directories as needed. A path of "-" writes to stdout.
func WriteFile(path string, s Summary) error {
	if path == "-" {
		return NewMarkdownWriter(os.Stdout).Write(s)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create summary directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided summary path is intentional
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}

	if err := NewMarkdownWriter(f).Write(s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close summary file: %w", err)
	}
	return nil
}
