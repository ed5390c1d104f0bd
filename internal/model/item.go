package model

import "time"

// RelAlternate is the link relationship that points at the canonical
// web representation of an entry. It is the only relationship consulted
// by the deduplication stage.
const RelAlternate = "alternate"

// Link is one outbound link of a feed item, tagged with its relationship
// type ("alternate", "enclosure", "related", ...).
type Link struct {
	// Href is the link target URI.
	Href string `json:"href"`

	// Rel is the link relationship. An empty Rel is treated as
	// "alternate", matching Atom's default.
	Rel string `json:"rel,omitempty"`
}

// Item is one syndication entry. Items are produced by the fetch stage
// and are immutable afterwards; every later pipeline stage either passes
// an item through unchanged or drops it.
type Item struct {
	// ID is the entry's opaque identifier (RSS guid, Atom id). May be
	// empty when the source omits it.
	ID string `json:"id"`

	// Title is the entry title as plain text.
	Title string `json:"title"`

	// Links holds all outbound links of the entry.
	Links []Link `json:"links,omitempty"`

	// Published is the entry's publish timestamp. Zero when the source
	// provides none; zero timestamps sort before all real ones.
	Published time.Time `json:"published"`

	// Summary is the short description of the entry, if any.
	Summary string `json:"summary,omitempty"`

	// Content is the full entry content, if the source carries one.
	Content string `json:"content,omitempty"`

	// SourceURL is the URL of the feed this item was fetched from.
	SourceURL string `json:"source_url,omitempty"`
}

// AlternateLink returns the URI of the item's first alternate link,
// or the empty string when the item has none. A link with an empty Rel
// counts as alternate.
func (i Item) AlternateLink() string {
	for _, l := range i.Links {
		if l.Rel == RelAlternate || l.Rel == "" {
			return l.Href
		}
	}
	return ""
}

// RunStats holds the counters one pipeline run accumulates. The zero
// value is ready to use.
type RunStats struct {
	// Sources is the number of configured source URLs.
	Sources int `json:"sources"`

	// Fetched is the number of items produced by the fetch stage.
	Fetched int `json:"fetched"`

	// Filtered is the number of items dropped by the filter chain.
	Filtered int `json:"filtered"`

	// Duplicates is the number of items dropped by deduplication.
	Duplicates int `json:"duplicates"`

	// Kept is the number of items in the final merged feed.
	Kept int `json:"kept"`
}
