// File: internal/client/client.go
//
// Package client is a typed HTTP client for the newsbot API. It keeps the
// session cookies in a jar so a login carries over to later calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for baseURL (e.g. http://localhost:8080/api). A nil
// httpClient gets a fresh one with its own cookie jar.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}, nil
}

// --- Auth ---

type RegisterRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool               `json:"success"`
	User    *domain.PublicUser `json:"user"`
	Message string             `json:"message"`
}

func (c *Client) Login(ctx context.Context, userID, password string) (*domain.PublicUser, error) {
	var out authResponse
	body := map[string]string{"userId": userID, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.PublicUser, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Me returns the logged-in user, or nil when there is none.
func (c *Client) Me(ctx context.Context) (*domain.PublicUser, error) {
	var out struct {
		User *domain.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// --- News and AI ---

func (c *Client) SearchNews(ctx context.Context, keyword string) ([]domain.NewsItem, error) {
	var out struct {
		News []domain.NewsItem `json:"news"`
	}
	path := "/news?keyword=" + url.QueryEscape(keyword)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.News, nil
}

func (c *Client) Summarize(ctx context.Context, news []domain.NewsItem) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/summarize", map[string]interface{}{"news": news}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

type ChatRequest struct {
	Message string               `json:"message"`
	News    []domain.NewsItem    `json:"news,omitempty"`
	Summary string               `json:"summary,omitempty"`
	History []domain.ChatMessage `json:"history,omitempty"`
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// --- Persistence ---

type SaveRequest struct {
	Keyword string            `json:"keyword"`
	News    []domain.NewsItem `json:"news"`
	Summary string            `json:"summary"`
	domain.Requester
}

// SaveSearch stores a finished search and returns its id.
func (c *Client) SaveSearch(ctx context.Context, req SaveRequest) (string, error) {
	var out struct {
		SearchID string `json:"searchId"`
	}
	if err := c.do(ctx, http.MethodPost, "/save-to-db", req, &out); err != nil {
		return "", err
	}
	return out.SearchID, nil
}

func (c *Client) ListSearches(ctx context.Context, limit int, keyword string) ([]domain.Search, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	path := "/searches"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Searches []domain.Search `json:"searches"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Searches, nil
}

// --- Email ---

type EmailRequest struct {
	Keyword string            `json:"keyword"`
	Summary string            `json:"summary"`
	News    []domain.NewsItem `json:"news"`
	domain.Requester
}

// SendEmail mails the report and returns the provider message id.
func (c *Client) SendEmail(ctx context.Context, req EmailRequest) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/send-email", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dst interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return handleResponse(resp, dst)
}

func handleResponse(resp *http.Response, dst interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if dst == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
