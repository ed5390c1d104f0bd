package filter

import (
	"fmt"

	"github.com/feedfold/feedfold/internal/model"
)

// Action is a filter's tri-state answer for one item.
type Action int

const (
	// Abstain means the filter holds no opinion; the running decision
	// is left untouched.
	Abstain Action = iota

	// Include votes to keep the item.
	Include

	// Exclude votes to drop the item.
	Exclude
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case Abstain:
		return "abstain"
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Filter decides whether one item belongs in the merged feed.
// Implementations must be side-effect free and must not mutate the item.
//
// Design decision: We use an interface rather than a function type
// because it allows filters to carry configuration state and provides
// a Name() method for logging, matching the pipeline Step interface.
type Filter interface {
	// Apply examines the item and returns the filter's answer.
	// A returned error aborts the whole run; errors are not isolated
	// per filter or per item.
	Apply(item model.Item) (Action, error)

	// Name returns the filter's name for logging purposes.
	Name() string
}

// Chain is an ordered list of filters evaluated with override
// semantics. The zero value (no filters) includes everything.
type Chain struct {
	filters []Filter
}

// NewChain creates a Chain evaluating the given filters in order.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Keep reports whether the item survives the chain.
//
// The decision starts at Include and is folded over the filters in
// definition order: Abstain leaves it unchanged, anything else
// overwrites it. The final decision after the last filter wins, which
// gives later filters priority over earlier ones.
func (c *Chain) Keep(item model.Item) (bool, error) {
	decision := Include
	for _, f := range c.filters {
		action, err := f.Apply(item)
		if err != nil {
			return false, fmt.Errorf("filter %q: %w", f.Name(), err)
		}
		if action != Abstain {
			decision = action
		}
	}
	return decision == Include, nil
}
