// Package filter decides which feed items survive a run.
//
// A Filter examines one item and answers with a tri-state Action:
// Include, Exclude, or Abstain. A Chain evaluates an ordered list of
// filters as a left fold starting from Include; Abstain leaves the
// running decision untouched while any other answer overwrites it, so
// later filters override earlier ones whenever they hold an opinion.
//
// The package also ships the rule filters the YAML run file can
// construct (title keyword, link host, maximum age). The chain itself
// is agnostic to where filters come from; callers may pass any Filter
// implementation.
package filter
