// File: internal/repository/search/gorm_search_repository.go
package search

import (
	"context"
	"log"
	"strings"

	"github.com/iyunix/go-newsbot/internal/database"
	"github.com/iyunix/go-newsbot/internal/domain"
)

type gormSearchRepository struct {
	handle database.Handle
}

// NewGormSearchRepository builds the repository over the client-trust handle.
func NewGormSearchRepository(handle database.Handle) SearchRepository {
	return &gormSearchRepository{handle: handle}
}

func (r *gormSearchRepository) CreateSearch(ctx context.Context, search *domain.Search) error {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return err
	}
	// Children are written by their own calls.
	if err := db.Omit("NewsItems", "Summaries").Create(search).Error; err != nil {
		log.Printf("[SearchRepository] Database error creating search: %v", err)
		return domain.NewStoreError("create search", err)
	}
	return nil
}

func (r *gormSearchRepository) CreateNewsItems(ctx context.Context, searchID string, items []domain.NewsItemRecord) error {
	if len(items) == 0 {
		return nil
	}
	db, err := r.handle.DB(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].SearchID = searchID
	}
	if err := db.Create(&items).Error; err != nil {
		log.Printf("[SearchRepository] Database error creating %d news items for %s: %v", len(items), searchID, err)
		return domain.NewStoreError("create news items", err)
	}
	return nil
}

func (r *gormSearchRepository) CreateSummary(ctx context.Context, searchID, text string) error {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return err
	}
	record := &domain.SummaryRecord{SearchID: searchID, SummaryText: text}
	if err := db.Create(record).Error; err != nil {
		log.Printf("[SearchRepository] Database error creating summary for %s: %v", searchID, err)
		return domain.NewStoreError("create summary", err)
	}
	return nil
}

// List returns searches newest first with their children loaded.
func (r *gormSearchRepository) List(ctx context.Context, opts ListOptions) ([]domain.Search, error) {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&domain.Search{}).
		Preload("NewsItems").
		Preload("Summaries").
		Order("created_at desc").
		Limit(ClampLimit(opts.Limit))

	if kw := strings.TrimSpace(opts.Keyword); kw != "" {
		query = query.Where("LOWER(keyword) LIKE ?", "%"+strings.ToLower(kw)+"%")
	}

	var searches []domain.Search
	if err := query.Find(&searches).Error; err != nil {
		log.Printf("[SearchRepository] Database error listing searches: %v", err)
		return nil, domain.NewStoreError("list searches", err)
	}
	return searches, nil
}

// ClampLimit applies the default and the upper bound for history listings.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
