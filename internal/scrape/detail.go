package scrape

import (
	"bytes"
	"context"
	"net/url"
	"sort"
	"strings"

	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/extract"
	"jobhunt-scraper/internal/scrape/util"
)

var detailSelectors = []string{
	"div[class*='description']",
	"div[class*='content']",
	"article",
	"div.prose",
	"div.job-description",
	"main",
}

// detailFunc returns the per-page description lookup, or nil when detail
// fetching is off. Lookups are memoised by canonical URL so overlapping
// candidates for one posting cost a single request.
func (p *Pipeline) detailFunc(ctx context.Context, base string) extract.DetailFunc {
	if !p.Detail || p.Fetcher == nil {
		return nil
	}
	memo := map[string]string{}
	home := strings.TrimRight(base, "/")
	return func(raw string) string {
		key := canonicalizeURL(raw)
		if key == "" || strings.TrimRight(key, "/") == home || isObviousJunkURL(key) {
			return ""
		}
		if v, ok := memo[key]; ok {
			return v
		}
		v := p.fetchDetail(ctx, raw)
		memo[key] = v
		return v
	}
}

func (p *Pipeline) fetchDetail(ctx context.Context, raw string) string {
	l := p.Log.With().Str("url", raw).Logger()

	// listing -> detail pause, then the per-host interval
	if err := util.Pause(ctx, p.DetailDelay); err != nil {
		return ""
	}
	if err := p.Limiter.WaitURL(ctx, raw); err != nil {
		return ""
	}

	body, err := p.Fetcher.Fetch(ctx, raw)
	if err != nil {
		l.Debug().Err(err).Msg("detail fetch failed")
		return ""
	}
	d, err := doc.Parse(bytes.NewReader(body))
	if err != nil {
		l.Debug().Err(err).Msg("detail parse failed")
		return ""
	}
	for _, sel := range detailSelectors {
		for _, el := range d.Query(sel) {
			if t := util.CleanText(el.SpacedText()); t != "" {
				return t
			}
		}
	}
	return ""
}

func canonicalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	// drop common tracking params
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "ref" || lk == "source" {
			q.Del(k)
		}
	}

	// deterministic query
	for k := range q {
		sort.Strings(q[k])
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// isObviousJunkURL filters links that never lead to a posting.
func isObviousJunkURL(u string) bool {
	lu := strings.ToLower(u)
	for _, j := range []string{
		"/login", "/signin", "/sign-in", "/signup", "/register",
		"/privacy", "/terms", "/legal", "/help", "/settings",
		"/post-a-job", "/post-job", "mailto:", "javascript:",
	} {
		if strings.Contains(lu, j) {
			return true
		}
	}
	return false
}
