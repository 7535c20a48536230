package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrInvalidTransition is returned when a lifecycle method is called from a state that doesn't allow it
var ErrInvalidTransition = errors.New("invalid draft status transition")

// Status of a draft in its lifecycle
type Status string

// draft statuses
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPublished Status = "published"
)

// Draft is a generated post waiting for approval or already published.
// Status moves only forward: pending -> approved|rejected, approved -> published.
type Draft struct {
	NewsURL     string     `json:"news_url"`
	NewsTitle   string     `json:"news_title"`
	Text        string     `json:"tweet_text"`
	Thread      []string   `json:"thread,omitempty"`
	Score       float64    `json:"source_score"`
	Category    Category   `json:"category"`
	Status      Status     `json:"status"`
	MessageID   *int64     `json:"telegram_message_id"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
	PostID      string     `json:"tweet_id,omitempty"`
}

// NewDraft makes a pending draft
func NewDraft(newsURL, newsTitle, text string, createdAt time.Time) Draft {
	return Draft{
		NewsURL:   newsURL,
		NewsTitle: newsTitle,
		Text:      text,
		Category:  CategoryNews,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}
}

// MarkApproved moves a pending draft to approved
func (d *Draft) MarkApproved() error {
	return d.transition(StatusPending, StatusApproved)
}

// MarkRejected moves a pending draft to rejected
func (d *Draft) MarkRejected() error {
	return d.transition(StatusPending, StatusRejected)
}

// MarkPublished records a successful publish. Only approved drafts can be published,
// status, publish time and post id are set together.
func (d *Draft) MarkPublished(postID string, at time.Time) error {
	if postID == "" {
		return fmt.Errorf("empty post id: %w", ErrInvalidTransition)
	}
	if err := d.transition(StatusApproved, StatusPublished); err != nil {
		return err
	}
	at = at.UTC()
	d.PostID = postID
	d.PublishedAt = &at
	return nil
}

// Terminal reports whether the draft can leave the pending set
func (d *Draft) Terminal() bool {
	return d.Status == StatusRejected || d.Status == StatusPublished
}

// Parts returns the texts to publish, the thread if present or the single text otherwise
func (d *Draft) Parts() []string {
	if len(d.Thread) > 0 {
		return d.Thread
	}
	return []string{d.Text}
}

// UnmarshalJSON reads drafts from older state files too: empty timestamps decode to zero values
// and timestamps without a zone are taken as UTC.
func (d *Draft) UnmarshalJSON(data []byte) error {
	type plain Draft
	aux := struct {
		*plain
		CreatedAt   string  `json:"created_at"`
		PublishedAt *string `json:"published_at"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	createdAt, err := parseStateTime(aux.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	d.CreatedAt = createdAt

	d.PublishedAt = nil
	if aux.PublishedAt != nil && strings.TrimSpace(*aux.PublishedAt) != "" {
		publishedAt, err := parseStateTime(*aux.PublishedAt)
		if err != nil {
			return fmt.Errorf("published_at: %w", err)
		}
		d.PublishedAt = &publishedAt
	}
	return nil
}

// parseStateTime parses a stored timestamp, RFC 3339 first, then naive ISO and other common layouts as UTC
func parseStateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC); err == nil {
		return ts, nil
	}
	ts, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return ts, nil
}

func (d *Draft) transition(from, to Status) error {
	if d.Status != from {
		return fmt.Errorf("%s -> %s: %w", d.Status, to, ErrInvalidTransition)
	}
	d.Status = to
	return nil
}
