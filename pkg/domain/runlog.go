package domain

import "time"

// ScoredCandidate is an audit record of a scored item
type ScoredCandidate struct {
	Title    string  `json:"title" db:"title"`
	URL      string  `json:"url" db:"url"`
	Source   string  `json:"source" db:"source"`
	Score    float64 `json:"score" db:"score"`
	Selected bool    `json:"selected" db:"selected"`
}

// RunLog is written once per generate run for offline analysis
type RunLog struct {
	ID              string            `json:"id" db:"id"`
	Timestamp       time.Time         `json:"timestamp" db:"ts"`
	TotalFetched    int               `json:"total_fetched" db:"total_fetched"`
	AfterDedup      int               `json:"after_dedup" db:"after_dedup"`
	DraftsGenerated int               `json:"drafts_generated" db:"drafts_generated"`
	Candidates      []ScoredCandidate `json:"candidates" db:"-"`
}
