package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/content"
	"github.com/aipostbot/newsdraft/pkg/domain"
	"github.com/aipostbot/newsdraft/pkg/feed"
	"github.com/aipostbot/newsdraft/pkg/llm"
	"github.com/aipostbot/newsdraft/pkg/ranker"
	"github.com/aipostbot/newsdraft/pkg/repository"
	"github.com/aipostbot/newsdraft/pkg/scheduler"
	"github.com/aipostbot/newsdraft/pkg/state"
	"github.com/aipostbot/newsdraft/pkg/telegram"
	"github.com/aipostbot/newsdraft/pkg/twitter"
	"github.com/aipostbot/newsdraft/pkg/workflow"
	"github.com/aipostbot/newsdraft/server"
)

// app holds wired collaborators shared by all commands
type app struct {
	cfg       *config.Config
	store     *state.Store
	repos     *repository.Repositories // nil when run history is disabled
	fetcher   *feed.Fetcher
	ranker    *ranker.Ranker
	extractor *content.HTTPExtractor // nil when extraction is disabled
	generator *llm.Generator
	bot       *telegram.Bot
	publisher *twitter.Client
}

// newApp builds collaborators from configuration
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{
		cfg:       cfg,
		store:     state.NewStore(cfg.State),
		fetcher:   feed.NewFetcher(feed.NewParser(cfg.Feed.Timeout, cfg.Feed.UserAgent)),
		ranker:    ranker.New(cfg.Ranking, cfg.Sources),
		generator: llm.NewGenerator(cfg.LLM, cfg.Twitter.MaxLength-cfg.Twitter.URLLength-1),
		bot:       telegram.NewBot(cfg.Telegram),
		publisher: twitter.NewClient(cfg.Twitter),
	}
	if cfg.Extraction.Enabled {
		a.extractor = content.NewHTTPExtractor(cfg.Extraction)
	}
	if cfg.History.DSN != "" {
		repos, err := repository.NewRepositories(ctx, repository.Config{
			DSN:          cfg.History.DSN,
			MaxOpenConns: cfg.History.MaxOpenConns,
		})
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		a.repos = repos
	}
	return a, nil
}

func (a *app) close() {
	if a.repos == nil {
		return
	}
	if err := a.repos.Close(); err != nil {
		lgr.Printf("[WARN] failed to close run history: %v", err)
	}
}

// generateJob wires the generate job for the given sources. Optional parts stay nil interfaces.
func (a *app) generateJob(sources []domain.Source) *workflow.GenerateJob {
	params := workflow.GenerateParams{
		Store:     a.store,
		Fetcher:   a.fetcher,
		Ranker:    a.ranker,
		Generator: a.generator,
		Sender:    a.bot,
		Sources:   sources,
		Retention: a.cfg.Retention(),
	}
	if a.extractor != nil {
		params.Extractor = a.extractor
	}
	if a.repos != nil {
		params.History = a.repos.Run
	}
	return workflow.NewGenerateJob(params)
}

func (a *app) publishJob() *workflow.PublishJob {
	return workflow.NewPublishJob(workflow.PublishParams{Store: a.store, Approvals: a.bot, Publisher: a.publisher})
}

// generate runs one generate pass
func (a *app) generate(ctx context.Context, sources []domain.Source) error {
	stats, err := a.generateJob(sources).Run(ctx)
	if err != nil {
		return err
	}
	lgr.Printf("[INFO] fetched %d, %d after dedup, %d selected, %d drafts, %d sent",
		stats.Fetched, stats.AfterDedup, stats.Selected, stats.Drafts, stats.Sent)
	return nil
}

// publish runs one publish pass
func (a *app) publish(ctx context.Context) error {
	stats, err := a.publishJob().Run(ctx)
	if err != nil {
		return err
	}
	lgr.Printf("[INFO] %d decisions, %d published, %d failed, %d pending",
		stats.Decisions, stats.Published, stats.Failed, stats.Pending)
	return nil
}

// schedule runs both jobs periodically from one loop next to the status server
func (a *app) schedule(ctx context.Context, version string, debug bool) error {
	genJob, pubJob := a.generateJob(a.cfg.Sources), a.publishJob()
	sched := scheduler.NewScheduler(
		scheduler.Task{Name: "generate", Interval: a.cfg.Schedule.GenerateInterval, Run: func(ctx context.Context) error {
			_, err := genJob.Run(ctx)
			return err
		}},
		scheduler.Task{Name: "publish", Interval: a.cfg.Schedule.PublishInterval, Run: func(ctx context.Context) error {
			_, err := pubJob.Run(ctx)
			return err
		}},
	)

	var history server.RunHistory
	if a.repos != nil {
		history = a.repos.Run
	}
	srv := server.New(a.cfg, a.store, history, sched, version, debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start(gctx)
		<-gctx.Done()
		sched.Stop()
		return nil
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("schedule: %w", err)
	}
	return nil
}
