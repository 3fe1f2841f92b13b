// File: internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string     `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Username     string     `gorm:"not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	IsAdmin      bool       `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// HashPassword securely hashes the user's password.
func (u *User) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// ValidatePassword compares a plain-text password with the user's hashed password.
func (u *User) ValidatePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// PublicUser is the shape returned to clients. It has no password field at all.
type PublicUser struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
