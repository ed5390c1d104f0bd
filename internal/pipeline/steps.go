package pipeline

import (
	"context"
	"slices"

	"github.com/feedfold/feedfold/internal/dedup"
	"github.com/feedfold/feedfold/internal/fetch"
	"github.com/feedfold/feedfold/internal/filter"
	"github.com/feedfold/feedfold/internal/merge"
	"github.com/feedfold/feedfold/internal/model"
	"github.com/feedfold/feedfold/internal/output"
)

// FetchStep retrieves all configured sources concurrently and loads
// the flattened item stream into the run. With no sources configured
// the fetcher is never invoked and the run continues on an empty
// stream.
type FetchStep struct {
	fetcher *fetch.Fetcher
	sources []string
}

// NewFetchStep creates a fetch step over the given sources.
func NewFetchStep(fetcher *fetch.Fetcher, sources []string) *FetchStep {
	return &FetchStep{fetcher: fetcher, sources: sources}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *Run) error {
	run.Stats.Sources = len(s.sources)
	if len(s.sources) == 0 {
		run.Items = []model.Item{}
		return nil
	}

	items, err := s.fetcher.FetchAll(ctx, s.sources)
	if err != nil {
		return err
	}

	run.Items = items
	run.Stats.Fetched = len(items)
	return nil
}

// FilterStep evaluates the filter chain against every item and keeps
// only those the chain includes. A filter error aborts the run.
type FilterStep struct {
	chain *filter.Chain
}

// NewFilterStep creates a filter step over the given chain. A nil
// chain behaves like an empty one and keeps everything.
func NewFilterStep(chain *filter.Chain) *FilterStep {
	if chain == nil {
		chain = filter.NewChain()
	}
	return &FilterStep{chain: chain}
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do executes the filter step.
func (s *FilterStep) Do(_ context.Context, run *Run) error {
	kept := make([]model.Item, 0, len(run.Items))
	for _, item := range run.Items {
		keep, err := s.chain.Keep(item)
		if err != nil {
			return err
		}
		if keep {
			kept = append(kept, item)
		}
	}

	run.Stats.Filtered = len(run.Items) - len(kept)
	run.Items = kept
	return nil
}

// DedupStep streams the filtered items through a fresh three-key
// deduplicator, preserving encounter order.
type DedupStep struct{}

// NewDedupStep creates a dedup step.
func NewDedupStep() *DedupStep {
	return &DedupStep{}
}

// Name returns the step name.
func (s *DedupStep) Name() string {
	return "dedup"
}

// Do executes the dedup step.
func (s *DedupStep) Do(_ context.Context, run *Run) error {
	d := dedup.New()
	run.Items = slices.Collect(d.Stream(slices.Values(run.Items)))
	if run.Items == nil {
		run.Items = []model.Item{}
	}
	run.Stats.Duplicates = d.Dropped()
	return nil
}

// MergeStep materializes the surviving items in chronological order.
type MergeStep struct{}

// NewMergeStep creates a merge step.
func NewMergeStep() *MergeStep {
	return &MergeStep{}
}

// Name returns the step name.
func (s *MergeStep) Name() string {
	return "merge"
}

// Do executes the merge step.
func (s *MergeStep) Do(_ context.Context, run *Run) error {
	run.Items = merge.ByPublished(slices.Values(run.Items))
	run.Stats.Kept = len(run.Items)
	return nil
}

// WriteStep hands the final ordered sequence to the Atom writer. With
// no target configured the run completes without any externally
// observable effect, which is still useful for composition and tests.
type WriteStep struct {
	writer *output.Writer
	target string
	meta   output.Metadata
}

// NewWriteStep creates a write step for the given target path.
func NewWriteStep(writer *output.Writer, target string, meta output.Metadata) *WriteStep {
	return &WriteStep{writer: writer, target: target, meta: meta}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do executes the write step.
func (s *WriteStep) Do(_ context.Context, run *Run) error {
	if s.target == "" {
		return nil
	}
	return s.writer.WriteFile(s.target, s.meta, run.Items)
}
