package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com/")
	generator.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	pubTime := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	later := pubTime.Add(time.Hour)
	drafts := []domain.Draft{
		{
			NewsURL: "https://news.com/1", NewsTitle: "First story", Text: "first post", Score: 1.35,
			Category: domain.CategoryRelease, Status: domain.StatusPublished, PublishedAt: &pubTime, PostID: "111",
		},
		{
			NewsURL: "https://news.com/2", NewsTitle: "Second story", Text: "second post", Thread: []string{"part a", "part b"},
			Category: domain.CategoryResearch, Status: domain.StatusPublished, PublishedAt: &later, PostID: "222",
		},
		{NewsURL: "https://news.com/3", NewsTitle: "Not yet", Text: "pending", Status: domain.StatusApproved},
	}

	out, err := generator.GenerateRSS(drafts)
	require.NoError(t, err)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	// channel links are checked on the raw output, on decode the atom link element also matches the plain link field
	assert.Contains(t, out, "<link>https://example.com/</link>")
	assert.Contains(t, out, `href="https://example.com/rss" rel="self" type="application/rss+xml"`)

	var rss RSS
	require.NoError(t, xml.Unmarshal([]byte(out), &rss))
	assert.Equal(t, "2.0", rss.Version)
	require.NotNil(t, rss.Channel)
	assert.Equal(t, "Tue, 10 Mar 2026 12:00:00 +0000", rss.Channel.LastBuildDate)
	require.Len(t, rss.Channel.Items, 2)

	newest := rss.Channel.Items[0]
	assert.Equal(t, "🔬 Second story", newest.Title)
	assert.Equal(t, "https://news.com/2", newest.Link)
	assert.Equal(t, "post-222", newest.GUID)
	assert.Contains(t, newest.Description, "part a\n\npart b")
	assert.Equal(t, []string{"research"}, newest.Categories)
	assert.Equal(t, later.Format(time.RFC1123Z), newest.PubDate)

	oldest := rss.Channel.Items[1]
	assert.Equal(t, "🚀 First story", oldest.Title)
	assert.Contains(t, oldest.Description, "first post")
	assert.Contains(t, oldest.Description, "Score: 1.35")
}

func TestGenerator_Empty(t *testing.T) {
	out, err := NewGenerator("http://localhost:8080").GenerateRSS(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "<channel>")
	assert.NotContains(t, out, "<item>")
}
