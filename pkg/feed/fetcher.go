// Package feed fetches news items from configured sources and renders the published posts feed
package feed

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

// Fetcher pulls items from all sources one after another
type Fetcher struct {
	parser *Parser
}

// NewFetcher creates a fetcher using the given parser
func NewFetcher(parser *Parser) *Fetcher {
	return &Fetcher{parser: parser}
}

// FetchAll returns items from all sources in source order.
// A failing source is logged and contributes nothing, other sources are not affected.
func (f *Fetcher) FetchAll(ctx context.Context, sources []domain.Source) []domain.NewsItem {
	var res []domain.NewsItem
	for _, src := range sources {
		if ctx.Err() != nil {
			lgr.Printf("[WARN] fetch interrupted: %v", ctx.Err())
			break
		}
		items, err := f.parser.Parse(ctx, src)
		if err != nil {
			lgr.Printf("[WARN] failed to fetch %s: %v", src.Name, err)
			continue
		}
		lgr.Printf("[INFO] fetched %d items from %s", len(items), src.Name)
		res = append(res, items...)
	}
	return res
}
