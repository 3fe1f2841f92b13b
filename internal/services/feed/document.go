// File: internal/services/feed/document.go
package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
	"github.com/samber/lo"

	"github.com/iyunix/go-newsbot/internal/domain"
)

type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectRSS
	DialectAtom
)

func (d Dialect) String() string {
	switch d {
	case DialectRSS:
		return "rss"
	case DialectAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// Document is a parsed feed. Exactly one of RSS and Atom is set, matching
// Dialect; both are nil for DialectUnknown.
type Document struct {
	Dialect Dialect
	RSS     *rss.Feed
	Atom    *atom.Feed
}

// Parse detects the dialect of raw and decodes it. Markup that is neither
// dialect yields an unknown Document, not an error.
func Parse(raw []byte) (*Document, error) {
	switch gofeed.DetectFeedType(bytes.NewReader(raw)) {
	case gofeed.FeedTypeRSS:
		f, err := (&rss.Parser{}).Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse rss: %w", err)
		}
		return &Document{Dialect: DialectRSS, RSS: f}, nil
	case gofeed.FeedTypeAtom:
		f, err := (&atom.Parser{}).Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse atom: %w", err)
		}
		return &Document{Dialect: DialectAtom, Atom: f}, nil
	default:
		return &Document{Dialect: DialectUnknown}, nil
	}
}

// Items normalizes the first MaxItems entries, keeping feed order.
func (d *Document) Items() []domain.NewsItem {
	switch d.Dialect {
	case DialectRSS:
		if d.RSS == nil {
			return []domain.NewsItem{}
		}
		return lo.Map(truncate(d.RSS.Items), func(it *rss.Item, _ int) domain.NewsItem {
			return fromRSSItem(it)
		})
	case DialectAtom:
		if d.Atom == nil {
			return []domain.NewsItem{}
		}
		return lo.Map(truncate(d.Atom.Entries), func(e *atom.Entry, _ int) domain.NewsItem {
			return fromAtomEntry(e)
		})
	default:
		return []domain.NewsItem{}
	}
}

func truncate[T any](items []T) []T {
	if len(items) > MaxItems {
		return items[:MaxItems]
	}
	return items
}

func fromRSSItem(it *rss.Item) domain.NewsItem {
	link := it.Link
	if link == "" && len(it.Links) > 0 {
		link = it.Links[0]
	}
	source := UnknownSource
	if it.Source != nil && it.Source.Title != "" {
		source = it.Source.Title
	}
	return domain.NewsItem{
		Title:       it.Title,
		Link:        link,
		Source:      source,
		PublishedAt: it.PubDate,
	}
}

func fromAtomEntry(e *atom.Entry) domain.NewsItem {
	var link string
	if first, ok := lo.Find(e.Links, func(l *atom.Link) bool { return l != nil && l.Href != "" }); ok {
		link = first.Href
	}
	source := UnknownSource
	if e.Source != nil && e.Source.Title != "" {
		source = e.Source.Title
	}
	return domain.NewsItem{
		Title:       e.Title,
		Link:        link,
		Source:      source,
		PublishedAt: lo.CoalesceOrEmpty(e.Published, e.Updated),
	}
}
