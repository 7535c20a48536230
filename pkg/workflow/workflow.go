// Package workflow runs the generate and publish jobs over the persisted state
package workflow

import (
	"context"
	"time"

	"github.com/aipostbot/newsdraft/pkg/domain"
	"github.com/aipostbot/newsdraft/pkg/ranker"
	"github.com/aipostbot/newsdraft/pkg/telegram"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . StateStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . FeedFetcher
//go:generate moq -out mocks/ranker.go -pkg mocks -skip-ensure -fmt goimports . ItemRanker
//go:generate moq -out mocks/enricher.go -pkg mocks -skip-ensure -fmt goimports . ContentEnricher
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . DraftGenerator
//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . DraftSender
//go:generate moq -out mocks/approvals.go -pkg mocks -skip-ensure -fmt goimports . ApprovalSource
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . RunHistory

// StateStore loads and saves the state document and run logs
type StateStore interface {
	Load() (*domain.AppState, error)
	Save(st *domain.AppState) error
	SaveRunLog(runLog domain.RunLog) (string, error)
}

// FeedFetcher collects items from all given sources
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []domain.Source) []domain.NewsItem
}

// ItemRanker scores, deduplicates and selects items
type ItemRanker interface {
	Rank(items []domain.NewsItem, seen map[string]struct{}) ranker.Result
}

// ContentEnricher adds extracted article text to items
type ContentEnricher interface {
	Enrich(ctx context.Context, items []domain.NewsItem) []domain.NewsItem
}

// DraftGenerator turns items into post drafts
type DraftGenerator interface {
	Generate(ctx context.Context, items []domain.NewsItem) []domain.Draft
}

// DraftSender delivers a draft for human review and returns the message id
type DraftSender interface {
	SendDraft(ctx context.Context, d domain.Draft) (int64, error)
}

// ApprovalSource reads review decisions and sends status notes
type ApprovalSource interface {
	Poll(ctx context.Context, cursor int64) (telegram.PollResult, error)
	Notify(ctx context.Context, text string) error
}

// Publisher posts approved drafts
type Publisher interface {
	Publish(ctx context.Context, body, link string) (string, error)
	PublishThread(ctx context.Context, parts []string, link string) (string, error)
}

// RunHistory keeps run logs in a database
type RunHistory interface {
	SaveRunLog(ctx context.Context, runLog domain.RunLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
