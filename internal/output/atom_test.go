package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/feedfold/feedfold/internal/model"
)

var fixedNow = time.Date(2026, time.March, 15, 8, 30, 0, 0, time.UTC)

// testItems returns two chronologically ordered items.
func testItems() []model.Item {
	return []model.Item{
		{
			ID:        "post-1",
			Title:     "Older",
			Links:     []model.Link{{Href: "http://x/older", Rel: model.RelAlternate}},
			Published: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			Summary:   "first",
		},
		{
			ID:        "post-2",
			Title:     "Newer",
			Links:     []model.Link{{Href: "http://x/newer", Rel: model.RelAlternate}},
			Published: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			Summary:   "second",
		},
	}
}

// TestWriterWrite tests Atom serialization.
func TestWriterWrite(t *testing.T) {
	t.Parallel()

	meta := Metadata{Title: "Merged", Description: "All the feeds", Link: "http://example.com/"}

	t.Run("emits feed metadata and the injected timestamp", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewWriter(WithNow(func() time.Time { return fixedNow }))
		if err := w.Write(&buf, meta, testItems()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := buf.String()
		for _, want := range []string{
			"<title>Merged</title>",
			"All the feeds",
			"2026-03-15T08:30:00Z",
			"post-1",
			"post-2",
		} {
			if !strings.Contains(doc, want) {
				t.Errorf("output missing %q:\n%s", want, doc)
			}
		}
	})

	t.Run("preserves the given item order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewWriter(WithNow(func() time.Time { return fixedNow }))
		if err := w.Write(&buf, meta, testItems()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := buf.String()
		if strings.Index(doc, "Older") > strings.Index(doc, "Newer") {
			t.Error("expected items serialized in given order")
		}
	})

	t.Run("empty item list still yields a valid feed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewWriter(WithNow(func() time.Time { return fixedNow }))
		if err := w.Write(&buf, meta, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := buf.String()
		if !strings.Contains(doc, "<title>Merged</title>") {
			t.Errorf("expected feed title in empty feed:\n%s", doc)
		}
		if strings.Contains(doc, "<entry>") {
			t.Error("expected no entries in empty feed")
		}
	})
}

// TestWriterWriteFile tests file output with directory creation.
func TestWriterWriteFile(t *testing.T) {
	t.Parallel()

	meta := Metadata{Title: "Merged", Description: "d"}

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "feed.xml")
		w := NewWriter(WithNow(func() time.Time { return fixedNow }))
		if err := w.WriteFile(path, meta, testItems()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path) //nolint:gosec // Test-controlled path
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !strings.Contains(string(data), "post-1") {
			t.Error("expected serialized items in output file")
		}
	})

	t.Run("fails on unwritable target", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		// The directory itself is not a writable file target.
		if err := NewWriter().WriteFile(dir, meta, nil); err == nil {
			t.Error("expected error writing over a directory")
		}
	})
}
