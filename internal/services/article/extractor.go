// File: internal/services/article/extractor.go
//
// Package article pulls the readable body text out of a news page.
package article

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-shiori/go-readability"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	// maxParallel bounds concurrent page fetches for one batch.
	maxParallel = 4
)

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ReadabilityExtractor downloads pages and reduces them to plain text.
type ReadabilityExtractor struct {
	httpClient *http.Client
	logger     Logger
}

func NewReadabilityExtractor(httpClient *http.Client, logger Logger) *ReadabilityExtractor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ReadabilityExtractor{httpClient: httpClient, logger: logger}
}

// Extract returns the readable text of the page at link.
func (e *ReadabilityExtractor) Extract(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil || pageURL.Host == "" {
		return "", fmt.Errorf("invalid article link %q", link)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("article fetch status %d", resp.StatusCode)
	}

	doc, err := readability.FromReader(resp.Body, resp.Request.URL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return strings.TrimSpace(doc.TextContent), nil
}

// ExtractAll extracts every link concurrently. The result is aligned with
// links; a failed or empty extraction leaves a nil entry and is only logged.
func (e *ReadabilityExtractor) ExtractAll(ctx context.Context, links []string) []*string {
	out := make([]*string, len(links))
	sem := make(chan struct{}, maxParallel)

	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, link string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := e.Extract(ctx, link)
			if err != nil {
				e.logger.Warn("article extraction failed", "link", link, "error", err)
				return
			}
			if text != "" {
				out[i] = &text
			}
		}(i, link)
	}
	wg.Wait()
	return out
}
