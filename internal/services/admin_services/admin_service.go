// File: internal/services/admin_services/admin_service.go
package admin_services

import (
	"context"
	"fmt"

	"github.com/iyunix/go-newsbot/internal/domain"
	searchrepo "github.com/iyunix/go-newsbot/internal/repository/search"
	"github.com/iyunix/go-newsbot/internal/repository/user"
)

// AdminService provides functionalities for administrative tasks.
type AdminService struct {
	userRepo   user.UserRepository
	searchRepo searchrepo.SearchRepository
}

func NewAdminService(userRepo user.UserRepository, searchRepo searchrepo.SearchRepository) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		searchRepo: searchRepo,
	}
}

// UserPage is one page of accounts plus the total match count.
type UserPage struct {
	Users []*domain.PublicUser `json:"users"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ListUsers pages through accounts, newest first, optionally filtered.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int, search string) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	users, total, err := s.userRepo.FindAllWithPaginationAndSearch(ctx, page, limit, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]*domain.PublicUser, len(users))
	for i := range users {
		out[i] = users[i].Public()
	}
	return &UserPage{Users: out, Total: total, Page: page, Limit: limit}, nil
}

// GetAllUsers returns every account for export.
func (s *AdminService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// SearchesForExport returns up to the listing maximum of recent searches
// with their children.
func (s *AdminService) SearchesForExport(ctx context.Context, keyword string) ([]domain.Search, error) {
	searches, err := s.searchRepo.List(ctx, searchrepo.ListOptions{Limit: searchrepo.MaxListLimit, Keyword: keyword})
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	return searches, nil
}
