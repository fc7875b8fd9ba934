package types

import (
	"context"

	"jobhunt-scraper/internal/domain"
)

// Fetcher returns the raw HTML body for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

// Source is one listing page and the base its relative links resolve against.
type Source struct {
	URL     string `yaml:"url"`
	BaseURL string `yaml:"base_url"`
}

// PageResult is one source's contribution to a run.
type PageResult struct {
	Source  Source
	Records []domain.JobRecord
	Err     error
}
