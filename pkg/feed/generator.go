package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

// Generator creates an RSS feed of published posts
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from published drafts, newest first
func (g *Generator) GenerateRSS(drafts []domain.Draft) (string, error) {
	rssItems := make([]*RSSItem, 0, len(drafts))
	for i := len(drafts) - 1; i >= 0; i-- {
		if drafts[i].Status != domain.StatusPublished {
			continue
		}
		rssItems = append(rssItems, g.convertToRSSItem(drafts[i]))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "Newsdraft - Published Posts",
			Link:          g.baseURL + "/",
			Description:   "AI news posts approved and published by newsdraft",
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

// convertToRSSItem converts a published draft to an RSS item
func (g *Generator) convertToRSSItem(d domain.Draft) *RSSItem {
	desc := strings.Join(d.Parts(), "\n\n")
	desc += fmt.Sprintf("\n\nSource: %s\nScore: %.2f", d.NewsTitle, d.Score)

	item := &RSSItem{
		Title:       fmt.Sprintf("%s %s", d.Category.Emoji(), d.NewsTitle),
		Link:        d.NewsURL,
		GUID:        d.NewsURL,
		Description: desc,
		Categories:  []string{string(d.Category)},
	}
	if d.PostID != "" {
		item.GUID = "post-" + d.PostID
	}
	if d.PublishedAt != nil {
		item.PubDate = d.PublishedAt.Format(time.RFC1123Z)
	}
	return item
}
