// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a login session (and its cookies) stays valid.
const SessionTTL = 24 * time.Hour

// GenerateSessionToken signs a token whose subject is the user's internal id.
func GenerateSessionToken(userID string, secretKey []byte, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user ID cannot be empty")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateSessionToken checks signature and expiry and returns the subject.
func ValidateSessionToken(tokenString string, secretKey []byte) (string, error) {
	if tokenString == "" {
		return "", errors.New("empty token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
