// Package extract resolves each JobRecord attribute from a candidate
// container. Every field has an ordered chain of steps; the first step that
// yields a non-empty value wins.
package extract

import (
	"strings"

	"jobhunt-scraper/internal/domain"
	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/util"
	"jobhunt-scraper/internal/scrape/validate"
)

// DetailFunc returns the description found on a posting's own page, or "".
type DetailFunc func(url string) string

// Env is the per-page input shared by every chain.
type Env struct {
	Vocab   validate.Vocabulary
	BaseURL string
	Detail  DetailFunc
}

// container is the candidate being enriched. text is the element's spaced
// text with one whitespace-collapsed line per non-empty line; flat is text
// on one line.
type container struct {
	el    doc.Element
	env   Env
	text  string
	flat  string
	lower string
	url   string
}

// step is one link of a resolution chain.
type step func(c *container) string

func newContainer(el doc.Element, env Env) *container {
	var lines []string
	for _, l := range strings.Split(el.SpacedText(), "\n") {
		if l = util.CleanText(l); l != "" {
			lines = append(lines, l)
		}
	}
	flat := strings.Join(lines, " ")
	return &container{
		el:    el,
		env:   env,
		text:  strings.Join(lines, "\n"),
		flat:  flat,
		lower: strings.ToLower(flat),
	}
}

func resolve(c *container, chain []step) string {
	for _, s := range chain {
		if v := strings.TrimSpace(s(c)); v != "" {
			return v
		}
	}
	return ""
}

// Record runs every field chain over el. URL is resolved before the
// description so the detail step can follow it.
func Record(el doc.Element, env Env) domain.JobRecord {
	c := newContainer(el, env)

	var j domain.JobRecord
	j.Title = resolve(c, titleChain)
	j.Company = resolve(c, companyChain)
	j.Location = resolve(c, locationChain)
	j.Salary = resolve(c, salaryChain)
	j.JobType = resolve(c, jobTypeChain)
	j.ExperienceLevel = resolve(c, experienceChain)
	j.Remote = Remote(c.flat)
	j.Technologies = Technologies(c.flat, env.Vocab.Technologies)
	c.url = URL(el, env.BaseURL)
	j.URL = c.url
	j.Description = resolve(c, descriptionChain)
	j.DatePosted = resolve(c, dateChain)
	return j
}

// Title runs only the title chain. The full-text strategy uses it to decide
// whether a block is worth a record at all.
func Title(el doc.Element, env Env) string {
	return resolve(newContainer(el, env), titleChain)
}

// structural returns the first descendant text under any of sels, in
// selector order then document order, that accept allows.
func structural(sels []string, accept func(v validate.Vocabulary, s string) bool, clean func(string) string) step {
	return func(c *container) string {
		for _, sel := range sels {
			for _, e := range c.el.Query(sel) {
				t := util.CleanText(e.SpacedText())
				if t == "" {
					continue
				}
				if accept != nil && !accept(c.env.Vocab, t) {
					continue
				}
				if clean != nil {
					t = clean(t)
				}
				return t
			}
		}
		return ""
	}
}
