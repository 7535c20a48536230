package domain

// StateVersion is the current schema version of the persisted state document
const StateVersion = 1

// AppState is the only persisted aggregate shared by the generate and publish jobs
type AppState struct {
	Version         int      `json:"version"`
	SeenURLs        []string `json:"seen_urls"`
	PendingDrafts   []Draft  `json:"pending_drafts"`
	PublishedTweets []Draft  `json:"published_tweets"`
	LastUpdateID    int64    `json:"last_telegram_update_id"`
}

// NewAppState returns an empty state with the current version
func NewAppState() *AppState {
	return &AppState{
		Version:         StateVersion,
		SeenURLs:        []string{},
		PendingDrafts:   []Draft{},
		PublishedTweets: []Draft{},
	}
}

// AdvanceCursor moves the approval cursor forward, never back
func (s *AppState) AdvanceCursor(updateID int64) {
	if updateID > s.LastUpdateID {
		s.LastUpdateID = updateID
	}
}

// SeenSet returns seen urls as a lookup set
func (s *AppState) SeenSet() map[string]struct{} {
	res := make(map[string]struct{}, len(s.SeenURLs))
	for _, u := range s.SeenURLs {
		res[u] = struct{}{}
	}
	return res
}

// Settle moves published drafts into history and drops rejected ones.
// Pending and approved drafts stay, approved ones are retried on the next publish run.
func (s *AppState) Settle() (published, rejected int) {
	remaining := make([]Draft, 0, len(s.PendingDrafts))
	for _, d := range s.PendingDrafts {
		switch d.Status {
		case StatusPublished:
			s.PublishedTweets = append(s.PublishedTweets, d)
			published++
		case StatusRejected:
			rejected++
		default:
			remaining = append(remaining, d)
		}
	}
	s.PendingDrafts = remaining
	return published, rejected
}
