package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-scraper/internal/domain"
	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/strategy"
	"jobhunt-scraper/internal/scrape/types"
	"jobhunt-scraper/internal/scrape/validate"
)

const jobCard = `<div class="job-card"><a href="/jobs/1">Senior Rust Engineer</a> at Acme Corp - Remote - $120,000</div>`

// pages serves fixed bodies and counts requests per URL.
type pages struct {
	mu    sync.Mutex
	body  map[string]string
	calls map[string]int
}

func newPages(body map[string]string) *pages {
	return &pages{body: body, calls: map[string]int{}}
}

func (p *pages) Fetch(_ context.Context, url string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[url]++
	b, ok := p.body[url]
	if !ok {
		return nil, fmt.Errorf("fetch %s: status 404", url)
	}
	return []byte(b), nil
}

func (p *pages) count(url string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[url]
}

func newPipeline(f types.Fetcher, detail bool) *Pipeline {
	p := New(f, Options{Vocab: validate.DefaultVocabulary(), Detail: detail})
	p.Log = zerolog.Nop()
	return p
}

func TestProcessHTMLJobCard(t *testing.T) {
	p := newPipeline(nil, false)
	recs, err := p.ProcessHTML(context.Background(), []byte(jobCard), "https://example.com")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	j := recs[0]
	assert.Contains(t, j.Title, "Senior Rust Engineer")
	assert.Equal(t, domain.RemoteYes, j.Remote)
	assert.Equal(t, "$120,000", j.Salary)
	assert.Equal(t, "https://example.com/jobs/1", j.URL)
}

func TestRunEndToEnd(t *testing.T) {
	f := newPages(map[string]string{"https://example.com/": jobCard})
	recs, err := newPipeline(f, false).Run(context.Background(), []types.Source{{URL: "https://example.com/"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "https://example.com/jobs/1", recs[0].URL)
	assert.Equal(t, "Acme Corp", recs[0].Company)
}

func TestRunIsIdempotent(t *testing.T) {
	body := `<ul>
<li class="job-item"><h3>Rust Backend Developer</h3> at Ferrous Labs, Berlin, Germany. Full-time.</li>
<li class="job-item"><h3>Senior Rust Engineer</h3> at Oxide Corp, Remote, $150k.</li>
</ul>`
	src := []types.Source{{URL: "https://example.com/", BaseURL: "https://example.com"}}

	a, err := newPipeline(newPages(map[string]string{"https://example.com/": body}), false).Run(context.Background(), src)
	require.NoError(t, err)
	b, err := newPipeline(newPages(map[string]string{"https://example.com/": body}), false).Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.NotEmpty(t, a)
	assert.Equal(t, "Rust Backend Developer", a[0].Title)
}

func TestRunNavigationSuppressed(t *testing.T) {
	var buf bytes.Buffer
	f := newPages(map[string]string{"https://example.com/": `<div class="job-card">Remote Rust Developer - Sign In</div>`})
	p := newPipeline(f, false)
	p.Log = zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := p.Run(context.Background(), []types.Source{{URL: "https://example.com/"}})
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Contains(t, buf.String(), `"reason":"navigation"`)
}

func TestRunEmptyPageIsNoRecords(t *testing.T) {
	f := newPages(map[string]string{"https://example.com/": `<html><body><div id="root"></div></body></html>`})
	recs, err := newPipeline(f, false).Run(context.Background(), []types.Source{{URL: "https://example.com/"}})
	assert.True(t, errors.Is(err, ErrNoRecords))
	assert.Nil(t, recs)
}

func TestRunFetchFailureIsIsolated(t *testing.T) {
	f := newPages(map[string]string{"https://b.example.com/": jobCard})
	p := newPipeline(f, false)
	sources := []types.Source{{URL: "https://a.example.com/"}, {URL: "https://b.example.com/"}}

	res := p.RunPages(context.Background(), sources)
	require.Len(t, res, 2)
	assert.Error(t, res[0].Err)
	assert.Empty(t, res[0].Records)
	assert.NoError(t, res[1].Err)
	assert.Len(t, res[1].Records, 1)

	recs, err := p.Run(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "https://b.example.com/jobs/1", recs[0].URL)
}

func TestRunDeduplicatesAcrossPages(t *testing.T) {
	f := newPages(map[string]string{
		"https://example.com/a": jobCard,
		"https://example.com/b": strings.Replace(jobCard, "/jobs/1", "/jobs/2", 1),
	})
	recs, err := newPipeline(f, false).Run(context.Background(), []types.Source{
		{URL: "https://example.com/a"}, {URL: "https://example.com/b"},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	// first page wins
	assert.Equal(t, "https://example.com/jobs/1", recs[0].URL)
}

func TestRunMultiElementCard(t *testing.T) {
	card := `<div class="bg-white rounded-lg shadow p-6">` +
		`<h3 class="text-lg font-semibold">Rust Backend Developer</h3>` +
		`<span class="text-gray-600">Ferrous Labs</span>` +
		`<div class="flex gap-2"><span class="px-2 rounded">Tokio</span><span class="px-2 rounded">Axum</span></div>` +
		`<span class="text-sm">Full-time</span><span class="text-sm">2024-06-01</span>` +
		`<a href="/jobs/7" class="text-blue-600">View details</a></div>`
	f := newPages(map[string]string{"https://example.com/": card})

	recs, err := newPipeline(f, false).Run(context.Background(), []types.Source{{URL: "https://example.com/"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	j := recs[0]
	assert.Equal(t, "Rust Backend Developer", j.Title)
	assert.Equal(t, []string{"Rust", "Tokio", "Axum"}, j.Technologies)
	assert.Equal(t, "Full-time", j.JobType)
	assert.Equal(t, "2024-06-01", j.DatePosted)
	assert.Equal(t, "https://example.com/jobs/7", j.URL)
	assert.True(t, strings.HasPrefix(j.Description, "Rust Backend Developer Ferrous Labs Tokio Axum"), j.Description)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newPages(map[string]string{"https://example.com/": jobCard})
	_, err := newPipeline(f, false).Run(ctx, []types.Source{{URL: "https://example.com/"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFullTextCandidate(t *testing.T) {
	body := `<section>We are hiring a Senior Rust Engineer to build our storage engine. ` +
		`You will own the write path, work closely with the database team and ship every week.</section>`
	recs, err := newPipeline(nil, false).ProcessHTML(context.Background(), []byte(body), "https://example.com")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Senior Rust Engineer", recs[0].Title)
}

func TestDetailHydration(t *testing.T) {
	listing := jobCard + strings.Replace(jobCard, "Senior Rust Engineer", "Staff Rust Engineer", 1)
	f := newPages(map[string]string{
		"https://example.com/":       listing,
		"https://example.com/jobs/1": `<main><div class="job-description">Build the Rust control plane for our fleet.</div></main>`,
	})
	recs, err := newPipeline(f, true).Run(context.Background(), []types.Source{{URL: "https://example.com/"}})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, j := range recs {
		assert.Equal(t, "Build the Rust control plane for our fleet.", j.Description)
	}
	assert.Equal(t, 1, f.count("https://example.com/jobs/1"))
}

func TestDetailFailureFallsThrough(t *testing.T) {
	f := newPages(map[string]string{"https://example.com/": jobCard})
	recs, err := newPipeline(f, true).Run(context.Background(), []types.Source{{URL: "https://example.com/"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Description, "Senior Rust Engineer at Acme Corp")
}

func TestShouldKeepCandidate(t *testing.T) {
	v := validate.DefaultVocabulary()
	tests := []struct {
		name   string
		c      strategy.Candidate
		keep   bool
		reason string
	}{
		{"job text", strategy.Candidate{Text: "Rust Developer at Acme", Kind: strategy.Container}, true, ""},
		{"no indicator", strategy.Candidate{Text: "Our cookie policy", Kind: strategy.ListItem}, false, "no_job_indicator"},
		{"navigation", strategy.Candidate{Text: "Remote Rust Developer - Sign In", Kind: strategy.StyledCard}, false, "navigation"},
		{"full text skips screening", strategy.Candidate{Text: "Sign in", Kind: strategy.FullText}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, reason := ShouldKeepCandidate(v, tt.c)
			assert.Equal(t, tt.keep, keep)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestShouldKeepTitle(t *testing.T) {
	tests := []struct {
		kind   strategy.Kind
		title  string
		reason string
	}{
		{strategy.FullText, "", "no_title"},
		{strategy.Container, "", "short_title"},
		{strategy.Container, "Rust", "short_title"},
		{strategy.ListItem, "Rusty", ""},
	}
	for _, tt := range tests {
		keep, reason := ShouldKeepTitle(tt.kind, tt.title)
		assert.Equal(t, tt.reason == "", keep, tt.title)
		assert.Equal(t, tt.reason, reason)
	}
}

func TestProbe(t *testing.T) {
	body := `<div class="job-card">Rust Developer at Acme</div><div class="job-card">Remote Rust Engineer</div><p>salary</p>`
	d, err := doc.ParseString(body)
	require.NoError(t, err)

	rep := Probe(d, []string{".job-card", ".missing", "div[["})
	require.Len(t, rep.Selectors, 3)
	assert.Equal(t, 2, rep.Selectors[0].Count)
	assert.Equal(t, []string{"Rust Developer at Acme", "Remote Rust Engineer"}, rep.Selectors[0].Previews)
	assert.Zero(t, rep.Selectors[1].Count)
	assert.Zero(t, rep.Selectors[2].Count)

	words := map[string]int{}
	for _, w := range rep.Words {
		words[w.Word] = w.Count
	}
	assert.Equal(t, 2, words["rust"])
	assert.Equal(t, 1, words["salary"])
	assert.NotContains(t, words, "programmer")

	require.Len(t, rep.Classes, 2)
	assert.Equal(t, ClassedElement{Tag: "div", Class: "job-card", Preview: "Rust Developer at Acme"}, rep.Classes[0])
}
