package dedup

import (
	"iter"

	"golang.org/x/text/cases"

	"github.com/feedfold/feedfold/internal/model"
)

// Deduplicator drops items whose id, case-folded title, or
// alternate-link URI has been seen before during the run.
//
// The three identity sets are private to one Deduplicator and are never
// accessed concurrently; everything downstream of the fetch stage is
// single-threaded. Create a fresh Deduplicator per run.
type Deduplicator struct {
	// caser folds titles for case-insensitive comparison. A Caser is
	// stateful and must not be shared between goroutines.
	caser cases.Caser

	seenIDs    map[string]struct{}
	seenTitles map[string]struct{}
	seenLinks  map[string]struct{}

	dropped int
}

// New creates a Deduplicator with empty identity sets.
func New() *Deduplicator {
	return &Deduplicator{
		caser:      cases.Fold(),
		seenIDs:    make(map[string]struct{}),
		seenTitles: make(map[string]struct{}),
		seenLinks:  make(map[string]struct{}),
	}
}

// Stream returns a lazy sub-sequence of src preserving encounter order.
//
// For each item the id and the folded title are both inserted into
// their sets first; a dropped item still occupies both keys for every
// later item. Only when both insertions are novel does the link check
// run: an alternate link must also be unseen, while an item without one
// passes the link dimension vacuously. Dropped items vanish silently.
//
// An item with an empty title skips the title check entirely and is
// judged on id and link identity alone. Collapsing untitled items onto
// a shared empty-string key would silently discard unrelated entries.
func (d *Deduplicator) Stream(src iter.Seq[model.Item]) iter.Seq[model.Item] {
	return func(yield func(model.Item) bool) {
		for item := range src {
			idNovel := insert(d.seenIDs, item.ID)

			titleNovel := true
			if item.Title != "" {
				titleNovel = insert(d.seenTitles, d.caser.String(item.Title))
			}

			if !idNovel || !titleNovel {
				d.dropped++
				continue
			}

			if link := item.AlternateLink(); link != "" {
				if !insert(d.seenLinks, link) {
					d.dropped++
					continue
				}
			}

			if !yield(item) {
				return
			}
		}
	}
}

// Dropped returns the number of items discarded so far.
func (d *Deduplicator) Dropped() int {
	return d.dropped
}

// insert adds key to the set and reports whether it was absent before.
func insert(set map[string]struct{}, key string) bool {
	if _, ok := set[key]; ok {
		return false
	}
	set[key] = struct{}{}
	return true
}
