package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"jobhunt-scraper/internal/scrape/types"
	"jobhunt-scraper/internal/scrape/util"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Error() string {
	return "config validation failed:\n- " + strings.Join(v.Errors, "\n- ")
}

// NormalizeAndValidate returns a normalized copy of cfg plus any problems
// found in it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	// Normalize vocabulary lists, then refill anything left empty
	v := &out.Vocabulary
	v.DomainKeyword = strings.ToLower(strings.TrimSpace(v.DomainKeyword))
	v.JobIndicators = trimList(v.JobIndicators)
	v.NavigationNoise = trimList(v.NavigationNoise)
	v.CompanyStopwords = trimList(v.CompanyStopwords)
	v.LocationKeywords = trimList(v.LocationKeywords)
	v.Technologies = trimList(v.Technologies)
	out.Vocabulary = out.Vocabulary.WithDefaults()

	out.App.Format = strings.ToLower(strings.TrimSpace(out.App.Format))
	out.App.Output = strings.TrimSpace(out.App.Output)
	out.Sources = normalizeSources(out.Sources, &res)

	// ---- Validation rules ----

	if len(out.Sources) == 0 {
		res.addWarn("no sources configured; pass --url or add sources to config")
	}

	if out.App.Timeout <= 0 {
		res.addErr("app.timeout must be > 0")
	}
	if out.App.MaxAttempts < 1 {
		res.addErr("app.max_attempts must be >= 1")
	}
	if out.App.Concurrency < 1 {
		res.addErr("app.concurrency must be >= 1")
	} else if out.App.Concurrency > 16 {
		res.addWarn("app.concurrency is high (%d); many sites will throttle you.", out.App.Concurrency)
	}
	if out.App.Output == "" {
		res.addErr("app.output is required")
	}
	if out.App.Format != "json" && out.App.Format != "csv" {
		res.addErr("app.format must be json or csv, got %q", out.App.Format)
	}

	// polite sanity
	if out.Polite.ListingDelay < 0 || out.Polite.DetailDelay < 0 {
		res.addErr("polite delays must be >= 0")
	}
	if out.Polite.ListingDelay < 200*time.Millisecond {
		res.addWarn("polite.listing_delay is very low (%s) and may get you rate limited.", out.Polite.ListingDelay)
	}
	if out.Detail.Enabled && out.Polite.DetailDelay == 0 {
		res.addWarn("detail.enabled=true with polite.detail_delay=0 hits every detail page back to back.")
	}

	return out, res
}

// normalizeSources trims and dedupes sources and fills missing base URLs.
func normalizeSources(in []types.Source, res *Validation) []types.Source {
	seen := map[string]bool{}
	var out []types.Source
	for i, s := range in {
		s.URL = strings.TrimSpace(s.URL)
		s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
		if s.URL == "" {
			res.addErr("sources[%d].url is required", i)
			continue
		}
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			res.addErr("sources[%d].url must be an absolute http(s) URL: %q", i, s.URL)
			continue
		}
		if seen[s.URL] {
			res.addWarn("duplicate source %q ignored", s.URL)
			continue
		}
		seen[s.URL] = true
		if s.BaseURL == "" {
			s.BaseURL = util.BaseOf(s.URL)
		}
		out = append(out, s)
	}
	return out
}
