// Package content extracts article text for selected news items
package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

// HTTPExtractor extracts article content from URLs using trafilatura
type HTTPExtractor struct {
	client        *http.Client
	userAgent     string
	minTextLength int
	maxChars      int
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(cfg config.ExtractionConfig) *HTTPExtractor {
	return &HTTPExtractor{
		client:        &http.Client{Timeout: cfg.Timeout},
		userAgent:     cfg.UserAgent,
		minTextLength: cfg.MinTextLength,
		maxChars:      cfg.MaxChars,
	}
}

// Extract retrieves and extracts text content from the given URL
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	// validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	setArticleHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	content := strings.TrimSpace(result.ContentText)
	if utf8.RuneCountInString(content) < e.minTextLength {
		return "", fmt.Errorf("content too short from %s: %d chars", urlStr, utf8.RuneCountInString(content))
	}
	if e.maxChars > 0 && utf8.RuneCountInString(content) > e.maxChars {
		content = string([]rune(content)[:e.maxChars])
	}
	return content, nil
}

// Enrich fills Content of each item with extracted article text.
// Items that fail extraction are returned unchanged.
func (e *HTTPExtractor) Enrich(ctx context.Context, items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, len(items))
	for i, item := range items {
		res[i] = item
		st := time.Now()
		text, err := e.Extract(ctx, item.URL)
		if err != nil {
			lgr.Printf("[WARN] failed to extract content for %s: %v", item.URL, err)
			continue
		}
		res[i].Content = text
		lgr.Printf("[DEBUG] extracted %d chars from %s in %v", len(text), item.URL, time.Since(st))
	}
	return res
}
