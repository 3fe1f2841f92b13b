// File: internal/handlers/auth_handlers.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/iyunix/go-newsbot/internal/auth"
	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/middleware"
	"github.com/iyunix/go-newsbot/internal/services/user_services"
)

// AuthService is what the auth handlers need from the account layer.
type AuthService interface {
	Register(ctx context.Context, in user_services.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, userID, password string) (*domain.User, string, error)
	CurrentUser(ctx context.Context, token string) *domain.User
	InitAdmin(ctx context.Context) (*domain.User, bool, error)
}

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	authService   AuthService
	secureCookies bool
	logger        Logger
}

func NewAuthHandler(authService AuthService, secureCookies bool, logger Logger) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies, logger: logger}
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type registerRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, msgJSONRequired, http.StatusBadRequest)
		return
	}

	u, err := h.authService.Register(r.Context(), user_services.RegisterInput{
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeAppError(w, err, "회원가입 중 오류가 발생했습니다.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    u.Public(),
		"message": user_services.MsgRegisterSucceeded,
	})
}

// Login handles POST /auth/login and sets both session cookies.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, msgJSONRequired, http.StatusBadRequest)
		return
	}

	u, token, err := h.authService.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		writeAppError(w, err, "로그인 중 오류가 발생했습니다.")
		return
	}

	maxAge := int(auth.SessionTTL / time.Second)
	http.SetCookie(w, h.cookie(middleware.SessionCookieName, token, true, maxAge))
	http.SetCookie(w, h.cookie(middleware.LoginIDCookieName, u.UserID, false, maxAge))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    u.Public(),
		"message": user_services.MsgLoginSucceeded,
	})
}

// Me handles GET /auth/me. Any failure is reported as a null user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}
	u := h.authService.CurrentUser(r.Context(), cookie.Value)
	if u == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": u.Public()})
}

// Logout handles POST /auth/logout by expiring both cookies.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie(middleware.SessionCookieName, "", true, -1))
	http.SetCookie(w, h.cookie(middleware.LoginIDCookieName, "", false, -1))
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// InitAdmin handles POST /auth/init-admin.
func (h *AuthHandler) InitAdmin(w http.ResponseWriter, r *http.Request) {
	admin, created, err := h.authService.InitAdmin(r.Context())
	if err != nil {
		h.logger.Error("admin init failed", "error", err)
		writeAppError(w, err, "관리자 계정 생성 중 오류가 발생했습니다.")
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": user_services.MsgAdminExists,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"admin": map[string]interface{}{
			"user_id":  admin.UserID,
			"username": admin.Username,
			"email":    admin.Email,
			"is_admin": admin.IsAdmin,
		},
		"message": user_services.MsgAdminCreated,
	})
}

func (h *AuthHandler) cookie(name, value string, httpOnly bool, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
