// Package report renders an optional human-readable summary of one
// merge run: the configured sources and what happened to the fetched
// items on their way into the merged feed.
//
// The summary is GitHub Flavored Markdown, suitable for pasting into
// issues or commit messages. It is purely informational; the Atom
// output in package output is the run's real artifact.
package report
