package ranker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

func testRanker(maxItems int) *Ranker {
	cfg := config.RankingConfig{
		RecencyThreshold: 48 * time.Hour,
		DedupThreshold:   0.8,
		MaxDrafts:        maxItems,
		DefaultWeight:    0.5,
		BoostKeywords:    []string{"gpt", "release"},
		MaxCandidates:    50,
	}
	sources := []domain.Source{
		{Name: "Lab Blog", Weight: 0.9},
		{Name: "Aggregator", Weight: 0.4},
	}
	return New(cfg, sources).WithClock(func() time.Time { return testNow })
}

func TestRanker_Rank(t *testing.T) {
	items := []domain.NewsItem{
		{Title: "Quarterly update", URL: "u1", Source: "Aggregator", Published: ago(2 * time.Hour)},        // 0.4
		{Title: "GPT-5 release notes", URL: "u2", Source: "Lab Blog", Published: ago(2 * time.Hour)},       // 1.35
		{Title: "Old GPT news", URL: "u3", Source: "Lab Blog", Published: ago(96 * time.Hour)},             // 0
		{Title: "GPT-5 release notes today", URL: "u4", Source: "Aggregator", Published: ago(time.Hour)},   // dup of u2
		{Title: "Unknown source story", URL: "u5", Source: "Somewhere", Published: ago(20 * time.Hour)},    // 0.4
		{Title: "Undated lab announcement", URL: "u6", Source: "Lab Blog"},                                 // 0.27
		{Title: "Seen already, big gpt release", URL: "u7", Source: "Lab Blog", Published: ago(time.Hour)}, // seen
	}
	seen := map[string]struct{}{"u7": {}}

	res := testRanker(3).Rank(items, seen)

	require.Len(t, res.Selected, 3)
	assert.Equal(t, "u2", res.Selected[0].URL)
	assert.InDelta(t, 1.35, res.Selected[0].Score, 1e-9)
	assert.Equal(t, "u1", res.Selected[1].URL, "ties keep input order")
	assert.Equal(t, "u5", res.Selected[2].URL)
	assert.InDelta(t, 0.4, res.Selected[2].Score, 1e-9)
	assert.Equal(t, 4, res.AfterDedup)

	// inputs are not mutated
	for _, item := range items {
		assert.Zero(t, item.Score)
	}

	// candidates include every positive item, including duplicates and seen ones
	require.Len(t, res.Candidates, 6)
	assert.Equal(t, "u2", res.Candidates[0].URL)
	assert.True(t, res.Candidates[0].Selected)
	assert.Equal(t, "u7", res.Candidates[1].URL)
	assert.False(t, res.Candidates[1].Selected)
	selected := 0
	for i, c := range res.Candidates {
		assert.Positive(t, c.Score)
		if i > 0 {
			assert.LessOrEqual(t, c.Score, res.Candidates[i-1].Score)
		}
		if c.Selected {
			selected++
		}
	}
	assert.Equal(t, 3, selected)
}

func TestRanker_RankBounds(t *testing.T) {
	var items []domain.NewsItem
	for i := 0; i < 20; i++ {
		items = append(items, domain.NewsItem{
			Title:     fmt.Sprintf("story %d about topic %c%c%c", i, 'a'+i, 'k'+i%7, 'z'-i),
			URL:       fmt.Sprintf("u%d", i),
			Source:    "Lab Blog",
			Published: ago(time.Duration(i*3) * time.Hour),
		})
	}

	for _, maxItems := range []int{0, 1, 3, 50} {
		t.Run(fmt.Sprintf("max %d", maxItems), func(t *testing.T) {
			res := testRanker(maxItems).Rank(items, nil)
			assert.LessOrEqual(t, len(res.Selected), maxItems)
			for i := 1; i < len(res.Selected); i++ {
				assert.LessOrEqual(t, res.Selected[i].Score, res.Selected[i-1].Score)
			}
		})
	}
}

func TestRanker_CandidatesCap(t *testing.T) {
	var items []domain.NewsItem
	for i := 0; i < 10; i++ {
		items = append(items, domain.NewsItem{Title: fmt.Sprintf("item %d", i), URL: fmt.Sprintf("u%d", i)})
	}
	r := testRanker(2)
	r.maxCandidates = 4
	res := r.Rank(items, nil)
	assert.Len(t, res.Candidates, 4)
}

func TestRanker_Empty(t *testing.T) {
	res := testRanker(3).Rank(nil, nil)
	assert.Empty(t, res.Selected)
	assert.Empty(t, res.Candidates)
	assert.Zero(t, res.AfterDedup)
}
