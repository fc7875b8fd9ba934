package extract

import (
	"strings"

	"jobhunt-scraper/internal/domain"
	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/util"
	"jobhunt-scraper/internal/scrape/validate"
)

const (
	maxTitleLen       = 150
	minDescriptionLen = 20
	excerptLen        = 300
)

var (
	titleSelectors = []string{
		"h1", "h2", "h3", "h4",
		"[class*='title']", "[class*='position']", "[class*='role']",
		"a",
	}
	companySelectors = []string{
		"[class*='company']", "[class*='employer']", "[class*='firm']",
		"[class*='organization']", "[class*='org-name']", "[data-company]",
	}
	locationSelectors = []string{
		"[class*='location']", "[class*='place']", "[class*='city']",
		"[class*='region']", "[data-location]",
	}
	descriptionSelectors = []string{
		"[class*='description']", "[class*='summary']", "[class*='excerpt']",
		"[class*='snippet']", "p",
	}
)

var titleChain = []step{
	structural(titleSelectors, validate.Vocabulary.IsPlausibleTitle, nil),
	textMatch(titlePatterns),
	titleFromLines,
}

var companyChain = []step{
	structural(companySelectors, validate.Vocabulary.IsPlausibleCompany, nil),
	textMatch(companyPatterns),
}

var locationChain = []step{
	structural(locationSelectors, validate.Vocabulary.IsPlausibleLocation, util.NormalizeLocation),
	func(c *container) string { return util.ExtractLocationFromLabeledText(c.text) },
	textMatch(locationPatterns),
}

var (
	salaryChain     = []step{textMatch(salaryPatterns)}
	jobTypeChain    = []step{textMatch(jobTypePatterns)}
	experienceChain = []step{textMatch(experiencePatterns)}
	dateChain       = []step{textMatch(datePatterns)}
)

var descriptionChain = []step{
	structural(descriptionSelectors, func(_ validate.Vocabulary, s string) bool {
		return util.RuneLen(s) >= minDescriptionLen
	}, nil),
	detailPage,
	func(c *container) string { return util.Truncate(c.flat, excerptLen) },
}

// titleFromLines takes the first line mentioning the domain keyword.
func titleFromLines(c *container) string {
	kw := strings.ToLower(c.env.Vocab.DomainKeyword)
	if kw == "" {
		return ""
	}
	for _, line := range strings.Split(c.text, "\n") {
		if strings.Contains(strings.ToLower(line), kw) {
			return util.Truncate(line, maxTitleLen)
		}
	}
	return ""
}

func detailPage(c *container) string {
	if c.env.Detail == nil || c.url == "" {
		return ""
	}
	return util.CleanText(c.env.Detail(c.url))
}

// Remote is Yes when the text carries any remote-work phrase.
func Remote(text string) domain.RemoteFlag {
	if remotePattern.MatchString(text) {
		return domain.RemoteYes
	}
	return domain.RemoteNo
}

// Technologies lists, in vocabulary order, every term that appears in text
// as a whole word, ignoring case. The result is never nil.
func Technologies(text string, vocab []string) []string {
	low := strings.ToLower(text)
	out := []string{}
	seen := map[string]bool{}
	for _, term := range vocab {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" || seen[key] {
			continue
		}
		if validate.IndexWord(low, key) >= 0 {
			seen[key] = true
			out = append(out, strings.TrimSpace(term))
		}
	}
	return out
}

// URL resolves the first anchor's href against base. An anchor container
// counts as its own first anchor.
func URL(el doc.Element, base string) string {
	a := el
	if el.Tag() != "a" {
		var ok bool
		if a, ok = el.First("a"); !ok {
			return ""
		}
	}
	href, ok := a.Attr("href")
	if !ok {
		return ""
	}
	return util.ResolveURL(base, href)
}
