package scrape

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"

	"jobhunt-scraper/internal/domain"
	"jobhunt-scraper/internal/scrape/dedup"
	"jobhunt-scraper/internal/scrape/types"
	"jobhunt-scraper/internal/scrape/util"
)

// Run processes every source and returns the deduplicated records in source
// order. A failing source contributes nothing; the others carry on.
func (p *Pipeline) Run(ctx context.Context, sources []types.Source) ([]domain.JobRecord, error) {
	results := p.RunPages(ctx, sources)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []domain.JobRecord
	for _, r := range results {
		all = append(all, r.Records...)
	}
	out := dedup.Records(all)

	p.Log.Info().
		Int("sources", len(sources)).
		Int("candidates", len(all)).
		Int("count", len(out)).
		Msg("run finished")

	if len(out) == 0 {
		return nil, ErrNoRecords
	}
	return out, nil
}

// RunPages fetches and processes each source concurrently. Results are
// indexed like sources.
func (p *Pipeline) RunPages(ctx context.Context, sources []types.Source) []types.PageResult {
	results := make([]types.PageResult, len(sources))

	var g errgroup.Group
	g.SetLimit(p.Concurrency)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = p.RunSource(ctx, src)
			return nil // best-effort: don't cancel siblings
		})
	}
	_ = g.Wait()
	return results
}

// RunSource fetches one listing page and extracts its records.
func (p *Pipeline) RunSource(ctx context.Context, src types.Source) types.PageResult {
	if src.BaseURL == "" {
		src.BaseURL = util.BaseOf(src.URL)
	}
	res := types.PageResult{Source: src}
	l := p.Log.With().Str("source", src.URL).Logger()

	start := time.Now()
	if err := p.Limiter.WaitURL(ctx, src.URL); err != nil {
		res.Err = err
		return res
	}
	body, err := p.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		l.Warn().Err(err).Msg("fetch failed")
		var ge *goerrors.Error
		if errors.As(err, &ge) {
			l.Debug().Str("stack", string(ge.Stack())).Msg("fetch stack")
		}
		res.Err = err
		return res
	}

	recs, err := p.ProcessHTML(ctx, body, src.BaseURL)
	if err != nil {
		l.Warn().Err(err).Msg("parse failed")
		res.Err = err
		return res
	}
	res.Records = recs

	l.Info().
		Int("count", len(recs)).
		Dur("took", time.Since(start)).
		Msg("source done")
	return res
}
