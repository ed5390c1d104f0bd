package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/feeds"

	"github.com/feedfold/feedfold/internal/model"
)

// Metadata carries the feed-level fields of the merged output.
type Metadata struct {
	// Title is the plaintext feed title.
	Title string

	// Description is the plaintext feed description.
	Description string

	// Link is the feed's site URL. Optional; Atom tolerates an empty
	// link element.
	Link string
}

// Writer serializes merged items as Atom.
type Writer struct {
	// now supplies the last-updated stamp. Injectable so tests can pin
	// the clock; defaults to time.Now.
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithNow overrides the clock used for the last-updated stamp.
func WithNow(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes the feed to dst. Item order is preserved exactly as
// given; the merge stage has already ordered it chronologically.
func (w *Writer) Write(dst io.Writer, meta Metadata, items []model.Item) error {
	feed := &feeds.Feed{
		Title:       meta.Title,
		Description: meta.Description,
		Link:        &feeds.Link{Href: meta.Link},
		Updated:     w.now(),
	}

	for _, item := range items {
		feed.Items = append(feed.Items, atomItem(item))
	}

	if err := feed.WriteAtom(dst); err != nil {
		return fmt.Errorf("write atom feed: %w", err)
	}
	return nil
}

// WriteFile serializes the feed to the given path, creating parent
// directories when they do not exist. A path of "-" writes to stdout.
func (w *Writer) WriteFile(path string, meta Metadata, items []model.Item) error {
	if path == "-" {
		return w.Write(os.Stdout, meta, items)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := w.Write(f, meta, items); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

// atomItem maps one pipeline item onto the serializer's entry type.
// The link is always non-nil; the Atom encoder dereferences it.
func atomItem(item model.Item) *feeds.Item {
	return &feeds.Item{
		Id:          item.ID,
		Title:       item.Title,
		Link:        &feeds.Link{Href: item.AlternateLink()},
		Description: item.Summary,
		Content:     item.Content,
		Created:     item.Published,
	}
}
