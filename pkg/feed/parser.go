package feed

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

// maxSummaryLen is the summary size kept per item, in characters
const maxSummaryLen = 500

// Parser fetches and parses RSS/Atom feeds into news items
type Parser struct {
	client    *http.Client
	userAgent string
	sanitizer *bluemonday.Policy
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Parse fetches the source feed and converts its entries to news items.
// Entries without a title or link are skipped.
func (p *Parser) Parse(ctx context.Context, src domain.Source) ([]domain.NewsItem, error) {
	body, err := p.fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}

		// keep the raw date string, scoring parses it
		published := entry.Published
		if published == "" {
			published = entry.Updated
		}

		items = append(items, domain.NewsItem{
			Title:     title,
			URL:       link,
			Summary:   p.summary(entry.Description),
			Published: published,
			Source:    src.Name,
		})
	}
	return items, nil
}

// summary strips html and cuts the text to maxSummaryLen characters
func (p *Parser) summary(description string) string {
	text := strings.TrimSpace(html.UnescapeString(p.sanitizer.Sanitize(description)))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxSummaryLen {
		return text
	}
	return string([]rune(text)[:maxSummaryLen])
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)

	setFeedHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
