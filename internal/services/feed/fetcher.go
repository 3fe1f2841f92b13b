// File: internal/services/feed/fetcher.go
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// Fetcher queries the news search feed and normalizes the result.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

func NewFetcher(baseURL string, httpClient *http.Client, logger Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// Search returns at most MaxItems articles for keyword. An empty or
// unrecognized feed is an empty list.
func (f *Fetcher) Search(ctx context.Context, keyword string) ([]domain.NewsItem, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.NewValidationError("search news", "keyword 쿼리 파라미터가 필요합니다.")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.queryURL(keyword), nil)
	if err != nil {
		return nil, domain.NewUpstreamError("search news", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error("feed request failed", "keyword", keyword, "error", err)
		return nil, domain.NewUpstreamError("search news", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("feed returned non-success status", "keyword", keyword, "status", resp.StatusCode)
		return nil, domain.NewUpstreamError("search news", fmt.Errorf("Google News RSS 오류: %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewUpstreamError("search news", err)
	}

	doc, err := Parse(raw)
	if err != nil {
		return nil, domain.NewUpstreamError("search news", err)
	}

	items := doc.Items()
	f.logger.Info("feed fetched",
		"keyword", keyword,
		"dialect", doc.Dialect.String(),
		"items", len(items),
		"duration_ms", time.Since(start).Milliseconds())
	return items, nil
}

func (f *Fetcher) queryURL(keyword string) string {
	return fmt.Sprintf("%s?q=%s&hl=ko&gl=KR&ceid=KR:ko", f.baseURL, url.QueryEscape(keyword))
}
