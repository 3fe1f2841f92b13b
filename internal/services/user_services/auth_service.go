// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/iyunix/go-newsbot/internal/auth"
	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/repository/user"
)

// RegisterInput carries the five registration fields.
type RegisterInput struct {
	UserID   string
	Username string
	Email    string
	Phone    string
	Password string
}

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey []byte
	logger       Logger
	now          func() time.Time
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		logger:       logger,
		now:          time.Now,
	}
}

// Register validates the input, rejects a taken login id or email and stores
// the new account with a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.UserID == "" || in.Username == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return nil, domain.NewValidationError("register", msgRegisterMissing)
	}
	if utf8.RuneCountInString(in.UserID) < minUserIDLength {
		return nil, domain.NewValidationError("register", msgUserIDTooShort)
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("register", msgPasswordTooShort)
	}

	existing, err := s.userRepo.FindByUserIDOrEmail(ctx, in.UserID, in.Email)
	switch {
	case err == nil:
		// A login id match is returned ahead of an email match.
		if existing.UserID == in.UserID {
			s.logger.Warn("registration failed - user id taken", "user_id", mask(in.UserID))
			return nil, domain.NewConflictError("register", msgUserIDTaken)
		}
		s.logger.Warn("registration failed - email taken", "user_id", mask(in.UserID))
		return nil, domain.NewConflictError("register", msgEmailTaken)
	case !errors.Is(err, user.ErrUserNotFound):
		s.logger.Error("registration lookup failed", "error", err)
		return nil, err
	}

	u := &domain.User{
		UserID:   in.UserID,
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if err := u.HashPassword(in.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		s.logger.Error("user creation failed", "user_id", mask(in.UserID), "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", mask(in.UserID), "id", created.ID)
	return created, nil
}

// Login checks the credentials, records the login time and returns the user
// with a signed session token. Unknown id and wrong password fail with the
// same AuthError.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*domain.User, string, error) {
	if userID == "" || password == "" {
		return nil, "", domain.NewValidationError("login", msgLoginMissing)
	}

	u, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			s.logger.Error("login lookup failed", "user_id", mask(userID), "error", err)
		} else {
			s.logger.Warn("login failed - user not found", "user_id", mask(userID))
		}
		return nil, "", domain.NewAuthError("login", msgInvalidLogin)
	}

	if err := u.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password", "user_id", mask(userID))
		return nil, "", domain.NewAuthError("login", msgInvalidLogin)
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.logger.Warn("last_login update failed", "id", u.ID, "error", err)
	} else {
		u.LastLogin = &now
	}

	token, err := auth.GenerateSessionToken(u.ID, s.jwtSecretKey, auth.SessionTTL)
	if err != nil {
		s.logger.Error("session token generation failed", "id", u.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", mask(userID), "is_admin", u.IsAdmin)
	return u, token, nil
}

// CurrentUser resolves a session token to its user. Any failure yields nil.
func (s *AuthService) CurrentUser(ctx context.Context, token string) *domain.User {
	id, err := auth.ValidateSessionToken(token, s.jwtSecretKey)
	if err != nil {
		s.logger.Debug("session token rejected", "error", err)
		return nil
	}
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Debug("session user lookup failed", "id", id, "error", err)
		return nil
	}
	return u
}

// InitAdmin creates the fixed administrator account once. created is false
// when it already exists; the existing row is left untouched.
func (s *AuthService) InitAdmin(ctx context.Context) (admin *domain.User, created bool, err error) {
	existing, err := s.userRepo.FindByUserID(ctx, AdminUserID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, false, err
	}

	u := &domain.User{
		UserID:   AdminUserID,
		Username: AdminUsername,
		Email:    AdminEmail,
		Phone:    AdminPhone,
		IsAdmin:  true,
	}
	if err := u.HashPassword(AdminPassword); err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}
	saved, err := s.userRepo.Create(ctx, u)
	if err != nil {
		return nil, false, err
	}
	s.logger.Info("admin account created", "user_id", AdminUserID)
	return saved, true, nil
}
