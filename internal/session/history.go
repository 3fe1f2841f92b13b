// File: internal/session/history.go
package session

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// Entry is one finished search as the client remembers it.
type Entry struct {
	ID        string
	Keyword   string
	CreatedAt time.Time
	News      []domain.NewsItem
	Summary   string
	Chat      []domain.ChatMessage
}

func (e Entry) clone() Entry {
	e.News = slices.Clone(e.News)
	e.Chat = slices.Clone(e.Chat)
	return e
}

// History is an immutable set of entries keyed by id, newest first. Every
// change returns a new History and leaves the receiver untouched.
type History struct {
	order   []string
	entries map[string]Entry
}

// With returns a History that contains e. A new id goes to the front; an
// existing id is replaced in place.
func (h History) With(e Entry) History {
	entries := make(map[string]Entry, len(h.entries)+1)
	for id, entry := range h.entries {
		entries[id] = entry
	}
	order := slices.Clone(h.order)
	if _, exists := entries[e.ID]; !exists {
		order = append([]string{e.ID}, order...)
	}
	entries[e.ID] = e.clone()
	return History{order: order, entries: entries}
}

// Without returns a History lacking id. Unknown ids return h unchanged.
func (h History) Without(id string) History {
	if _, ok := h.entries[id]; !ok {
		return h
	}
	entries := make(map[string]Entry, len(h.entries)-1)
	for k, entry := range h.entries {
		if k != id {
			entries[k] = entry
		}
	}
	return History{order: lo.Without(h.order, id), entries: entries}
}

func (h History) Get(id string) (Entry, bool) {
	e, ok := h.entries[id]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// List returns copies of every entry, newest first.
func (h History) List() []Entry {
	return lo.Map(h.order, func(id string, _ int) Entry {
		return h.entries[id].clone()
	})
}

func (h History) Len() int { return len(h.order) }
