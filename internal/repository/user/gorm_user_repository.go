// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iyunix/go-newsbot/internal/database"
	"github.com/iyunix/go-newsbot/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	handle database.Handle
}

func NewGormUserRepository(handle database.Handle) UserRepository {
	return &gormUserRepository{handle: handle}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user cannot be nil")
	}
	db, err := r.handle.DB(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Create(user).Error; err != nil {
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, domain.NewStoreError("create user", err)
	}
	log.Printf("[UserRepository] User created with ID: %s", user.ID)
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, "id = ?", id)
}

func (r *gormUserRepository) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, "user_id = ?", userID)
}

// FindByUserIDOrEmail returns an account holding either value. An account
// matching the login id is always preferred over one matching only the email.
func (r *gormUserRepository) FindByUserIDOrEmail(ctx context.Context, userID, email string) (*domain.User, error) {
	u, err := r.findOne(ctx, "user_id = ?", userID)
	if !errors.Is(err, ErrUserNotFound) {
		return u, err
	}
	return r.findOne(ctx, "email = ?", email)
}

func (r *gormUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return err
	}
	result := db.Model(&domain.User{}).Where("id = ?", id).Update("last_login", at)
	if result.Error != nil {
		log.Printf("[UserRepository] Database error updating last_login for %s: %v", id, result.Error)
		return domain.NewStoreError("update last_login", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *gormUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := db.Order("created_at desc").Find(&users).Error; err != nil {
		log.Printf("[UserRepository] Database error finding all users: %v", err)
		return nil, domain.NewStoreError("list users", err)
	}
	return users, nil
}

// FindAllWithPaginationAndSearch pages through accounts, optionally filtering
// by a case-insensitive match on user id, username or email.
func (r *gormUserRepository) FindAllWithPaginationAndSearch(ctx context.Context, page, limit int, search string) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 1000 {
		return nil, 0, domain.NewValidationError("list users", "limit must be between 1 and 1000")
	}

	db, err := r.handle.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := db.Model(&domain.User{})
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(user_id) LIKE ? OR LOWER(username) LIKE ? OR LOWER(email) LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[UserRepository] Database error counting users with search: %v", err)
		return nil, 0, domain.NewStoreError("count users", err)
	}

	var users []domain.User
	offset := (page - 1) * limit
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		log.Printf("[UserRepository] Database error in paginated search query: %v", err)
		return nil, 0, domain.NewStoreError("list users", err)
	}
	return users, total, nil
}

func (r *gormUserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return nil, err
	}
	var user domain.User
	err = db.Where(query, args...).First(&user).Error
	return handleFindError(err, &user)
}

func handleFindError(err error, user *domain.User) (*domain.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	log.Printf("[UserRepository] Database query error: %v", err)
	return nil, domain.NewStoreError("find user", err)
}
