// Package scrape runs the extraction pipeline: fetch each listing page, run
// the discovery strategies, filter the candidates, enrich survivors into
// records and deduplicate the lot.
package scrape

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jobhunt-scraper/internal/scrape/strategy"
	"jobhunt-scraper/internal/scrape/types"
	"jobhunt-scraper/internal/scrape/util"
	"jobhunt-scraper/internal/scrape/validate"
)

// ErrNoRecords means no strategy on any page produced a record. It usually
// points at client-rendered markup rather than a parsing bug.
var ErrNoRecords = errors.New("no job records found")

type Options struct {
	Vocab        validate.Vocabulary
	ListingDelay time.Duration
	DetailDelay  time.Duration
	Detail       bool
	Concurrency  int
}

type Pipeline struct {
	Vocab      validate.Vocabulary
	Fetcher    types.Fetcher
	Strategies []strategy.Strategy
	Limiter    *util.HostLimiter

	DetailDelay time.Duration
	Detail      bool
	Concurrency int

	Log zerolog.Logger
}

func New(f types.Fetcher, opts Options) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Pipeline{
		Vocab:       opts.Vocab.WithDefaults(),
		Fetcher:     f,
		Strategies:  strategy.Default(),
		Limiter:     util.NewIntervalLimiter(opts.ListingDelay),
		DetailDelay: opts.DetailDelay,
		Detail:      opts.Detail,
		Concurrency: opts.Concurrency,
		Log:         log.Logger,
	}
}
