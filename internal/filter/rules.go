package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/feedfold/feedfold/internal/model"
)

// Rule kinds recognized by NewRule. These are the values the YAML run
// file may use in a filter rule's "type" field.
const (
	RuleIncludeTitle    = "include-title"
	RuleExcludeTitle    = "exclude-title"
	RuleIncludeLinkHost = "include-link-host"
	RuleExcludeLinkHost = "exclude-link-host"
	RuleExcludeOlder    = "exclude-older-than"
)

// ErrUnknownRule is returned when a rule type is not recognized.
var ErrUnknownRule = errors.New("unknown filter rule type")

// ErrEmptyRuleValue is returned when a rule is missing its value.
var ErrEmptyRuleValue = errors.New("filter rule requires a value")

// NewRule constructs a built-in filter from a rule type and value.
// Title rules take a keyword, link-host rules a host name, and
// exclude-older-than a Go duration string (e.g. "720h").
func NewRule(kind, value string) (Filter, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyRuleValue, kind)
	}

	switch kind {
	case RuleIncludeTitle:
		return &titleFilter{keyword: value, action: Include}, nil
	case RuleExcludeTitle:
		return &titleFilter{keyword: value, action: Exclude}, nil
	case RuleIncludeLinkHost:
		return &linkHostFilter{host: value, action: Include}, nil
	case RuleExcludeLinkHost:
		return &linkHostFilter{host: value, action: Exclude}, nil
	case RuleExcludeOlder:
		maxAge, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("parse %s value: %w", RuleExcludeOlder, err)
		}
		return &ageFilter{maxAge: maxAge, now: time.Now}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, kind)
	}
}

// titleFilter answers with its action when the item title contains the
// keyword (case-insensitive) and abstains otherwise.
type titleFilter struct {
	keyword string
	action  Action
}

// Apply implements Filter.
func (f *titleFilter) Apply(item model.Item) (Action, error) {
	if strings.Contains(strings.ToLower(item.Title), strings.ToLower(f.keyword)) {
		return f.action, nil
	}
	return Abstain, nil
}

// Name implements Filter.
func (f *titleFilter) Name() string {
	if f.action == Include {
		return RuleIncludeTitle
	}
	return RuleExcludeTitle
}

// linkHostFilter answers with its action when the item's alternate link
// points at the configured host and abstains otherwise. Items without
// an alternate link always abstain.
type linkHostFilter struct {
	host   string
	action Action
}

// Apply implements Filter.
func (f *linkHostFilter) Apply(item model.Item) (Action, error) {
	alt := item.AlternateLink()
	if alt == "" {
		return Abstain, nil
	}
	u, err := url.Parse(alt)
	if err != nil {
		// An unparsable link is no evidence either way.
		return Abstain, nil
	}
	if strings.EqualFold(u.Hostname(), f.host) {
		return f.action, nil
	}
	return Abstain, nil
}

// Name implements Filter.
func (f *linkHostFilter) Name() string {
	if f.action == Include {
		return RuleIncludeLinkHost
	}
	return RuleExcludeLinkHost
}

// ageFilter excludes items published longer than maxAge ago. Items with
// a zero publish time abstain; their age is unknown.
type ageFilter struct {
	maxAge time.Duration
	now    func() time.Time
}

// Apply implements Filter.
func (f *ageFilter) Apply(item model.Item) (Action, error) {
	if item.Published.IsZero() {
		return Abstain, nil
	}
	if f.now().Sub(item.Published) > f.maxAge {
		return Exclude, nil
	}
	return Abstain, nil
}

// Name implements Filter.
func (f *ageFilter) Name() string {
	return RuleExcludeOlder
}
