package user

import (
	"context"
	"time"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// UserRepository handles user account persistence. All calls run with the
// server-trust datastore handle.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	FindByUserIDOrEmail(ctx context.Context, userID, email string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	FindAll(ctx context.Context) ([]domain.User, error)
	FindAllWithPaginationAndSearch(ctx context.Context, page, limit int, search string) ([]domain.User, int64, error)
}
