// Package merge materializes the surviving item stream and orders it
// chronologically. It is the only pipeline stage that needs the whole
// sequence in memory; everything before it stays streaming.
package merge

import (
	"iter"
	"slices"

	"github.com/feedfold/feedfold/internal/model"
)

// ByPublished drains src and returns the items sorted ascending by
// publish time. The sort is stable: items with equal timestamps keep
// their encounter order. Zero timestamps sort before all real ones.
func ByPublished(src iter.Seq[model.Item]) []model.Item {
	items := slices.Collect(src)
	slices.SortStableFunc(items, func(a, b model.Item) int {
		return a.Published.Compare(b.Published)
	})
	if items == nil {
		return []model.Item{}
	}
	return items
}
