package fetch

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"

	"github.com/feedfold/feedfold/internal/model"
)

// parseItems turns one raw syndication document into items.
//
// The plain RSS reader runs first because it accepts the RDF-based
// RSS 1.0 documents some legacy sources still serve. Only when it
// rejects the document does the universal reader auto-detect among
// RSS 2.0, Atom, and JSON Feed. A document neither reader accepts is
// an error, which fails the whole run.
func parseItems(data []byte, sourceURL string) ([]model.Item, error) {
	feed, err := parseLegacy(data)
	if err != nil {
		feed, err = gofeed.NewParser().Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse feed: %w", err)
		}
	}

	items := make([]model.Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, convertItem(it, sourceURL))
	}
	return items, nil
}

// parseLegacy parses with the plain RSS reader and normalizes the
// result to the universal representation.
func parseLegacy(data []byte) (*gofeed.Feed, error) {
	rssFeed, err := (&rss.Parser{}).Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return (&gofeed.DefaultRSSTranslator{}).Translate(rssFeed)
}

// convertItem maps one parsed entry onto the pipeline's item type.
func convertItem(it *gofeed.Item, sourceURL string) model.Item {
	item := model.Item{
		ID:        it.GUID,
		Title:     it.Title,
		Summary:   it.Description,
		Content:   it.Content,
		Published: publishedAt(it),
		SourceURL: sourceURL,
	}

	if it.Link != "" {
		item.Links = append(item.Links, model.Link{Href: it.Link, Rel: model.RelAlternate})
	}
	for _, href := range it.Links {
		if href == it.Link || href == "" {
			continue
		}
		item.Links = append(item.Links, model.Link{Href: href, Rel: "related"})
	}
	for _, enc := range it.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		item.Links = append(item.Links, model.Link{Href: enc.URL, Rel: "enclosure"})
	}

	// Sources without guids are common enough that the canonical link
	// has to stand in as the identifier.
	if item.ID == "" {
		item.ID = it.Link
	}

	return item
}

// publishedAt picks the entry timestamp: publish time when present,
// update time as fallback, zero otherwise.
func publishedAt(it *gofeed.Item) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return time.Time{}
}
