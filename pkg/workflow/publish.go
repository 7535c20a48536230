package workflow

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/aipostbot/newsdraft/pkg/domain"
	"github.com/aipostbot/newsdraft/pkg/telegram"
)

// notifyPreview is the number of runes of a published post quoted in the notification
const notifyPreview = 100

// PublishParams holds collaborators of the publish job
type PublishParams struct {
	Store     StateStore
	Approvals ApprovalSource
	Publisher Publisher
}

// PublishStats reports what a publish run did
type PublishStats struct {
	Decisions int
	Approved  int
	Rejected  int
	Published int
	Failed    int
	Pending   int
}

// PublishJob applies review decisions and publishes approved drafts
type PublishJob struct {
	PublishParams
	now func() time.Time
}

// NewPublishJob makes a publish job
func NewPublishJob(params PublishParams) *PublishJob {
	return &PublishJob{PublishParams: params, now: time.Now}
}

// Run executes one publish pass
func (j *PublishJob) Run(ctx context.Context) (PublishStats, error) {
	var stats PublishStats

	st, err := j.Store.Load()
	if err != nil {
		return stats, fmt.Errorf("load state: %w", err)
	}
	if len(st.PendingDrafts) == 0 {
		lgr.Printf("[INFO] no pending drafts to process")
		return stats, nil
	}

	res, err := j.Approvals.Poll(ctx, st.LastUpdateID)
	if err != nil {
		return stats, fmt.Errorf("poll decisions: %w", err)
	}
	st.AdvanceCursor(res.Cursor)
	stats.Decisions = len(res.Decisions)

	j.applyDecisions(st, res.Decisions, &stats)

	for i := range st.PendingDrafts {
		d := &st.PendingDrafts[i]
		if d.Status != domain.StatusApproved {
			continue
		}
		if err := j.publish(ctx, d); err != nil {
			lgr.Printf("[WARN] failed to publish %q, will retry next run: %v", d.NewsTitle, err)
			stats.Failed++
			continue
		}
		stats.Published++
	}

	published, rejected := st.Settle()
	stats.Pending = len(st.PendingDrafts)
	lgr.Printf("[DEBUG] settled %d published and %d rejected drafts", published, rejected)

	if err := j.Store.Save(st); err != nil {
		return stats, fmt.Errorf("save state: %w", err)
	}
	lgr.Printf("[INFO] publish run complete: %d published, %d still pending", stats.Published, stats.Pending)
	return stats, nil
}

// applyDecisions matches decisions to pending drafts by message id
func (j *PublishJob) applyDecisions(st *domain.AppState, decisions []telegram.Decision, stats *PublishStats) {
	byMessage := make(map[int64]bool, len(decisions))
	for _, dec := range decisions {
		byMessage[dec.MessageID] = dec.Approved // later replies win
	}

	matched := 0
	for i := range st.PendingDrafts {
		d := &st.PendingDrafts[i]
		if d.MessageID == nil {
			continue
		}
		approved, ok := byMessage[*d.MessageID]
		if !ok {
			continue
		}
		matched++
		if approved {
			if err := d.MarkApproved(); err != nil {
				lgr.Printf("[DEBUG] ignore approval of %q: %v", d.NewsTitle, err)
				continue
			}
			stats.Approved++
			continue
		}
		if err := d.MarkRejected(); err != nil {
			lgr.Printf("[DEBUG] ignore rejection of %q: %v", d.NewsTitle, err)
			continue
		}
		stats.Rejected++
		lgr.Printf("[INFO] draft rejected: %s", d.NewsTitle)
	}
	if lost := len(byMessage) - matched; lost > 0 {
		lgr.Printf("[DEBUG] %d decisions refer to drafts no longer pending", lost)
	}
}

// publish posts a single approved draft and marks it published
func (j *PublishJob) publish(ctx context.Context, d *domain.Draft) error {
	var postID string
	var err error
	parts := d.Parts()
	if len(parts) > 1 {
		postID, err = j.Publisher.PublishThread(ctx, parts, d.NewsURL)
	} else {
		postID, err = j.Publisher.Publish(ctx, parts[0], d.NewsURL)
	}
	if err != nil {
		return err
	}
	if err := d.MarkPublished(postID, j.now()); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	lgr.Printf("[INFO] published post %s: %s", postID, d.NewsTitle)

	note := fmt.Sprintf("✅ Tweet published: %s...", preview(parts[0], notifyPreview))
	if err := j.Approvals.Notify(ctx, note); err != nil {
		lgr.Printf("[WARN] failed to send publish notification: %v", err)
	}
	return nil
}

// preview returns the first n runes of s
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
