package ranker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testScorer() Scorer {
	return Scorer{
		RecencyThreshold: 48 * time.Hour,
		Keywords:         []string{"gpt", "release", "open source"},
		Now:              func() time.Time { return testNow },
	}
}

func ago(d time.Duration) string {
	return testNow.Add(-d).Format(time.RFC1123Z)
}

func TestScorer_Recency(t *testing.T) {
	s := testScorer()
	tests := []struct {
		name      string
		published string
		want      float64
	}{
		{name: "empty", published: "", want: 0.3},
		{name: "blank", published: "   ", want: 0.3},
		{name: "garbage", published: "not a date at all", want: 0.3},
		{name: "two hours", published: ago(2 * time.Hour), want: 1.0},
		{name: "future date", published: ago(-time.Hour), want: 1.0},
		{name: "eighteen hours", published: ago(18 * time.Hour), want: 0.8},
		{name: "thirty hours", published: ago(30 * time.Hour), want: 0.5},
		{name: "exactly threshold", published: ago(48 * time.Hour), want: 0},
		{name: "three days", published: ago(72 * time.Hour), want: 0},
		{name: "rfc3339", published: testNow.Add(-time.Hour).Format(time.RFC3339), want: 1.0},
		{name: "gmt zone", published: testNow.Add(-20 * time.Hour).Format(time.RFC1123), want: 0.8},
		{name: "naive treated as utc", published: testNow.Add(-6 * time.Hour).Format("2006-01-02 15:04:05"), want: 1.0},
		{name: "est is 7h old, not 12h", published: "Tue, 10 Mar 2026 00:00:00 EST", want: 1.0},
		{name: "pdt is 5.5h old, not 12.5h", published: "Mon, 09 Mar 2026 23:30:00 PDT", want: 1.0},
		{name: "lowercase cdt is 21h old, not 26h", published: "Mon, 09 Mar 2026 10:00:00 cdt", want: 0.8},
		{name: "est is 46h old, not 51h", published: "Sun, 08 Mar 2026 09:00:00 EST", want: 0.5},
		{name: "bare year", published: "2026", want: 0.3},
		{name: "date only", published: "2026-03-10", want: 0.3},
		{name: "rfc822 date only", published: "10 Mar 2026", want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Recency(tt.published), 1e-9)
		})
	}
}

func TestScorer_Boost(t *testing.T) {
	s := testScorer()
	assert.InDelta(t, 1.5, s.Boost("New GPT model"), 1e-9)
	assert.InDelta(t, 1.5, s.Boost("GPT release and Open Source weights"), 1e-9, "multiple matches don't stack")
	assert.InDelta(t, 1.5, s.Boost("OPEN SOURCE everything"), 1e-9)
	assert.InDelta(t, 1.0, s.Boost("Quarterly earnings"), 1e-9)
	assert.InDelta(t, 1.0, s.Boost(""), 1e-9)
}

func TestScorer_Score(t *testing.T) {
	s := testScorer()

	t.Run("boosted fresh item", func(t *testing.T) {
		item := domain.NewsItem{Title: "GPT-5 Release", Published: ago(2 * time.Hour)}
		assert.InDelta(t, 1.35, s.Score(item, 0.9), 1e-9)
	})

	t.Run("unknown date", func(t *testing.T) {
		item := domain.NewsItem{Title: "Something else"}
		assert.InDelta(t, 0.15, s.Score(item, 0.5), 1e-9)
	})

	t.Run("stale item vetoed", func(t *testing.T) {
		for _, weight := range []float64{0.1, 0.5, 1.0} {
			item := domain.NewsItem{Title: "GPT release open source", Published: ago(100 * time.Hour)}
			assert.Zero(t, s.Score(item, weight))
		}
	})

	t.Run("zero weight vetoed", func(t *testing.T) {
		item := domain.NewsItem{Title: "GPT", Published: ago(time.Hour)}
		assert.Zero(t, s.Score(item, 0))
	})
}

func TestScorer_DefaultClock(t *testing.T) {
	s := Scorer{RecencyThreshold: 48 * time.Hour}
	assert.InDelta(t, 1.0, s.Recency(time.Now().Add(-time.Minute).Format(time.RFC1123Z)), 1e-9)
}
