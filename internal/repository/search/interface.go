package search

import (
	"context"

	"github.com/iyunix/go-newsbot/internal/domain"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListOptions narrows a history listing. Zero values mean defaults.
type ListOptions struct {
	Limit   int
	Keyword string
}

// SearchRepository persists searches with their news items and summaries.
type SearchRepository interface {
	CreateSearch(ctx context.Context, search *domain.Search) error
	CreateNewsItems(ctx context.Context, searchID string, items []domain.NewsItemRecord) error
	CreateSummary(ctx context.Context, searchID, text string) error
	List(ctx context.Context, opts ListOptions) ([]domain.Search, error)
}
