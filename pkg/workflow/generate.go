package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

// ErrNoDrafts is returned when items were selected but no draft came back from the generator
var ErrNoDrafts = errors.New("no drafts generated")

// GenerateParams holds collaborators of the generate job. Extractor and History are optional.
type GenerateParams struct {
	Store     StateStore
	Fetcher   FeedFetcher
	Ranker    ItemRanker
	Extractor ContentEnricher
	Generator DraftGenerator
	Sender    DraftSender
	History   RunHistory
	Sources   []domain.Source
	Retention time.Duration // run history kept in the database, zero keeps everything
}

// GenerateStats reports what a generate run did
type GenerateStats struct {
	Fetched    int
	AfterDedup int
	Selected   int
	Drafts     int
	Sent       int
	RunLogFile string
}

// GenerateJob fetches news, drafts posts and sends them for review
type GenerateJob struct {
	GenerateParams
	now func() time.Time
}

// NewGenerateJob makes a generate job
func NewGenerateJob(params GenerateParams) *GenerateJob {
	return &GenerateJob{GenerateParams: params, now: time.Now}
}

// Run executes one generate pass. State is saved only when drafts were produced.
func (j *GenerateJob) Run(ctx context.Context) (GenerateStats, error) {
	var stats GenerateStats
	lgr.Printf("[INFO] starting generate run for %d sources", len(j.Sources))

	st, err := j.Store.Load()
	if err != nil {
		return stats, fmt.Errorf("load state: %w", err)
	}

	items := j.Fetcher.FetchAll(ctx, j.Sources)
	stats.Fetched = len(items)
	if len(items) == 0 {
		lgr.Printf("[WARN] no news items fetched from any source")
		return stats, nil
	}

	res := j.Ranker.Rank(items, st.SeenSet())
	stats.AfterDedup, stats.Selected = res.AfterDedup, len(res.Selected)
	if len(res.Selected) == 0 {
		lgr.Printf("[INFO] no new relevant items after filtering %d fetched", len(items))
		return stats, nil
	}

	selected := res.Selected
	if j.Extractor != nil {
		selected = j.Extractor.Enrich(ctx, selected)
	}

	drafts := j.Generator.Generate(ctx, selected)
	stats.Drafts = len(drafts)
	if len(drafts) == 0 {
		return stats, ErrNoDrafts
	}

	byURL := make(map[string]domain.NewsItem, len(selected))
	for _, it := range selected {
		byURL[it.URL] = it
	}
	sources := make(map[string]domain.Source, len(j.Sources))
	for _, s := range j.Sources {
		sources[s.Name] = s
	}

	for i := range drafts {
		d := &drafts[i]
		if it, ok := byURL[d.NewsURL]; ok {
			d.Score = it.Score
			d.Category = domain.Classify(sources[it.Source], it.Title)
		}
		msgID, err := j.Sender.SendDraft(ctx, *d)
		if err != nil {
			lgr.Printf("[WARN] failed to send draft %q for review: %v", d.NewsTitle, err)
			continue
		}
		d.MessageID = &msgID
		st.PendingDrafts = append(st.PendingDrafts, *d)
		stats.Sent++
	}

	// selected items are consumed even when their drafts failed to send
	for _, it := range res.Selected {
		st.SeenURLs = append(st.SeenURLs, it.URL)
	}

	if err := j.Store.Save(st); err != nil {
		return stats, fmt.Errorf("save state: %w", err)
	}

	runLog := domain.RunLog{
		ID:              uuid.NewString(),
		Timestamp:       j.now().UTC(),
		TotalFetched:    stats.Fetched,
		AfterDedup:      res.AfterDedup,
		DraftsGenerated: len(drafts),
		Candidates:      res.Candidates,
	}
	if stats.RunLogFile, err = j.Store.SaveRunLog(runLog); err != nil {
		lgr.Printf("[WARN] failed to write run log: %v", err)
	}
	j.recordHistory(ctx, runLog)

	lgr.Printf("[INFO] generate run complete: %d drafts, %d sent for review", len(drafts), stats.Sent)
	return stats, nil
}

// recordHistory stores the run in the history database, failures are not fatal
func (j *GenerateJob) recordHistory(ctx context.Context, runLog domain.RunLog) {
	if j.History == nil {
		return
	}
	if err := j.History.SaveRunLog(ctx, runLog); err != nil {
		lgr.Printf("[WARN] failed to store run %s in history: %v", runLog.ID, err)
		return
	}
	if j.Retention <= 0 {
		return
	}
	deleted, err := j.History.DeleteOlderThan(ctx, runLog.Timestamp.Add(-j.Retention))
	if err != nil {
		lgr.Printf("[WARN] failed to prune run history: %v", err)
		return
	}
	if deleted > 0 {
		lgr.Printf("[DEBUG] pruned %d old runs from history", deleted)
	}
}
