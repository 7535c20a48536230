// Package ranker scores, deduplicates and selects news items for drafting
package ranker

import (
	"sort"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

// Ranker picks the best new items of a run
type Ranker struct {
	scorer         Scorer
	weights        map[string]float64
	defaultWeight  float64
	dedupThreshold float64
	maxItems       int
	maxCandidates  int
}

// Result of a ranking pass
type Result struct {
	Selected   []domain.NewsItem        // top items, score descending
	Candidates []domain.ScoredCandidate // every item with a positive score, capped, selected ones flagged
	AfterDedup int                      // items left after score filter and dedup
}

// New makes a ranker for the given sources. Sources not listed get the default weight.
func New(cfg config.RankingConfig, sources []domain.Source) *Ranker {
	weights := make(map[string]float64, len(sources))
	for _, s := range sources {
		weights[s.Name] = s.Weight
	}
	return &Ranker{
		scorer:         Scorer{RecencyThreshold: cfg.RecencyThreshold, Keywords: cfg.BoostKeywords},
		weights:        weights,
		defaultWeight:  cfg.DefaultWeight,
		dedupThreshold: cfg.DedupThreshold,
		maxItems:       cfg.MaxDrafts,
		maxCandidates:  cfg.MaxCandidates,
	}
}

// WithClock sets the time source used for recency, for tests
func (r *Ranker) WithClock(now func() time.Time) *Ranker {
	r.scorer.Now = now
	return r
}

// Rank scores items, drops zero scores and duplicates, and returns up to maxItems best ones.
// Input items are not modified, scored copies are returned.
func (r *Ranker) Rank(items []domain.NewsItem, seen map[string]struct{}) Result {
	scored := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		item.Score = r.scorer.Score(item, r.weight(item.Source))
		scored = append(scored, item)
	}

	positive := make([]domain.NewsItem, 0, len(scored))
	for _, item := range scored {
		if item.Score > 0 {
			positive = append(positive, item)
		}
	}

	deduped := Deduplicate(positive, seen, r.dedupThreshold)
	sort.SliceStable(deduped, func(i, j int) bool { return deduped[i].Score > deduped[j].Score })

	selected := deduped
	if r.maxItems >= 0 && len(selected) > r.maxItems {
		selected = selected[:r.maxItems]
	}

	lgr.Printf("[INFO] ranked %d items from %d total (%d after dedup)", len(selected), len(items), len(deduped))
	return Result{
		Selected:   selected,
		Candidates: r.candidates(positive, selected),
		AfterDedup: len(deduped),
	}
}

func (r *Ranker) weight(source string) float64 {
	if w, ok := r.weights[source]; ok {
		return w
	}
	return r.defaultWeight
}

// candidates builds the audit list from positively scored items, best first
func (r *Ranker) candidates(positive, selected []domain.NewsItem) []domain.ScoredCandidate {
	picked := make(map[string]bool, len(selected))
	for _, item := range selected {
		picked[item.URL] = true
	}

	sorted := make([]domain.NewsItem, len(positive))
	copy(sorted, positive)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if r.maxCandidates > 0 && len(sorted) > r.maxCandidates {
		sorted = sorted[:r.maxCandidates]
	}

	res := make([]domain.ScoredCandidate, 0, len(sorted))
	for _, item := range sorted {
		res = append(res, domain.ScoredCandidate{
			Title:    item.Title,
			URL:      item.URL,
			Source:   item.Source,
			Score:    item.Score,
			Selected: picked[item.URL],
		})
	}
	return res
}
