// File: internal/services/search_service.go
package services

import (
	"context"
	"strings"

	"github.com/iyunix/go-newsbot/internal/domain"
	searchrepo "github.com/iyunix/go-newsbot/internal/repository/search"
)

const SaveSuccessMessage = "데이터가 성공적으로 저장되었습니다."

// ContentExtractor fetches article bodies; nil entries mean "no content".
type ContentExtractor interface {
	ExtractAll(ctx context.Context, links []string) []*string
}

// SaveInput is one finished search to persist.
type SaveInput struct {
	Keyword   string
	News      []domain.NewsItem
	Summary   string
	Requester domain.Requester
}

// SearchService persists and lists search sessions.
type SearchService struct {
	repo      searchrepo.SearchRepository
	extractor ContentExtractor
	logger    Logger
}

// NewSearchService builds the service. extractor may be nil, in which case
// news items are stored without content.
func NewSearchService(repo searchrepo.SearchRepository, extractor ContentExtractor, logger Logger) *SearchService {
	return &SearchService{repo: repo, extractor: extractor, logger: logger}
}

// Save writes the search, its news items and its summary in that order and
// returns the new search id. The writes are not transactional; rows from
// earlier steps stay when a later step fails.
func (s *SearchService) Save(ctx context.Context, in SaveInput) (string, error) {
	if in.Keyword == "" || len(in.News) == 0 || in.Summary == "" {
		return "", domain.NewValidationError("save search", "키워드, 뉴스, 요약이 필요합니다.")
	}

	search := &domain.Search{
		Keyword:   in.Keyword,
		UserUUID:  optional(in.Requester.UserID),
		UserName:  optional(in.Requester.Name),
		UserEmail: optional(in.Requester.Email),
		UserPhone: optional(in.Requester.Phone),
	}
	if err := s.repo.CreateSearch(ctx, search); err != nil {
		s.logger.Error("search insert failed", "keyword", in.Keyword, "error", err)
		return "", err
	}

	records := make([]domain.NewsItemRecord, len(in.News))
	for i, n := range in.News {
		records[i] = domain.NewsItemRecord{
			Title:       n.Title,
			Link:        n.Link,
			Source:      n.Source,
			PublishedAt: n.PublishedAt,
		}
	}
	if s.extractor != nil {
		links := make([]string, len(in.News))
		for i, n := range in.News {
			links[i] = n.Link
		}
		for i, content := range s.extractor.ExtractAll(ctx, links) {
			records[i].Content = content
		}
	}

	if err := s.repo.CreateNewsItems(ctx, search.ID, records); err != nil {
		s.logger.Error("news item insert failed", "search_id", search.ID, "error", err)
		return "", err
	}

	if err := s.repo.CreateSummary(ctx, search.ID, in.Summary); err != nil {
		s.logger.Error("summary insert failed", "search_id", search.ID, "error", err)
		return "", err
	}

	s.logger.Info("search saved", "search_id", search.ID, "keyword", in.Keyword, "articles", len(records))
	return search.ID, nil
}

// List returns recent searches, newest first.
func (s *SearchService) List(ctx context.Context, limit int, keyword string) ([]domain.Search, error) {
	searches, err := s.repo.List(ctx, searchrepo.ListOptions{Limit: limit, Keyword: keyword})
	if err != nil {
		return nil, err
	}
	if searches == nil {
		searches = []domain.Search{}
	}
	return searches, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
