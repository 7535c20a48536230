package ranker

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

// recency factors
const (
	unknownDateFactor = 0.3
	freshFactor       = 1.0
	dayFactor         = 0.8
	windowFactor      = 0.5
	keywordBoost      = 1.5
)

// zoneOffsets maps obsolete RFC 822 zone names to numeric offsets, time.Parse reads them as +0000
var zoneOffsets = map[string]string{
	"EST": "-0500", "EDT": "-0400",
	"CST": "-0600", "CDT": "-0500",
	"MST": "-0700", "MDT": "-0600",
	"PST": "-0800", "PDT": "-0700",
}

// timeOfDay matches the clock part of a timestamp, dates without it are not scored
var timeOfDay = regexp.MustCompile(`\d{1,2}:\d{2}`)

// Scorer computes item scores as weight * recency * keyword boost
type Scorer struct {
	RecencyThreshold time.Duration
	Keywords         []string
	Now              func() time.Time
}

// Score returns the score of the item for the given source weight.
// Any zero factor vetoes the item regardless of other factors.
func (s Scorer) Score(item domain.NewsItem, weight float64) float64 {
	return weight * s.Recency(item.Published) * s.Boost(item.Title)
}

// Recency returns the recency factor for a raw publication date string.
// Dates without a zone are treated as UTC. Missing, unparseable or date-only values get a low non-zero factor.
func (s Scorer) Recency(published string) float64 {
	ts, ok := parsePublished(published)
	if !ok {
		return unknownDateFactor
	}

	age := s.now().Sub(ts)
	switch {
	case age < 12*time.Hour:
		return freshFactor
	case age < 24*time.Hour:
		return dayFactor
	case age < s.RecencyThreshold:
		return windowFactor
	default:
		return 0
	}
}

// Boost returns the keyword factor, first matching keyword wins
func (s Scorer) Boost(title string) float64 {
	lower := strings.ToLower(title)
	for _, kw := range s.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return keywordBoost
		}
	}
	return 1.0
}

// parsePublished reads a feed date, resolving named US zones to their offsets
func parsePublished(published string) (time.Time, bool) {
	published = strings.TrimSpace(published)
	if published == "" || !timeOfDay.MatchString(published) {
		return time.Time{}, false
	}
	if idx := strings.LastIndexByte(published, ' '); idx > 0 {
		if offset, ok := zoneOffsets[strings.ToUpper(published[idx+1:])]; ok {
			published = published[:idx+1] + offset
		}
	}
	ts, err := dateparse.ParseIn(published, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (s Scorer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
