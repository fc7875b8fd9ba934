// Package strategy holds the independent container-discovery passes run over
// one document. Each pass is a read-only function of the document; their
// outputs are concatenated in a fixed order and may overlap.
package strategy

import (
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/extract"
	"jobhunt-scraper/internal/scrape/util"
	"jobhunt-scraper/internal/scrape/validate"
)

type Kind int

const (
	Container Kind = iota
	StyledCard
	ListItem
	FullText
)

func (k Kind) String() string {
	switch k {
	case Container:
		return "container"
	case StyledCard:
		return "styled_card"
	case ListItem:
		return "list_item"
	case FullText:
		return "full_text"
	default:
		return "unknown"
	}
}

// Candidate is a node some strategy thinks wraps a posting.
type Candidate struct {
	Element doc.Element
	Text    string
	Kind    Kind
}

// Strategy queries Selectors and keeps the matches whose collapsed text is
// longer than MinLen and passes Accept (when set).
type Strategy struct {
	Kind      Kind
	Selectors []string
	MinLen    int
	Accept    func(v validate.Vocabulary, text string) bool
}

var containerSelectors = []string{
	".job", ".job-card", ".job-listing", ".job-item", ".job-post",
	".position", ".offer", ".listing", ".card",
	"[data-job-id]", "[data-job]", "[itemtype*='JobPosting']",
	"div[class*='job']", "li[class*='job']",
	"article",
}

var styledCardSelectors = []string{
	"div.bg-white.rounded-lg.shadow",
	"div.bg-white.rounded-lg.border",
	"div.p-4.border.rounded",
	"div.p-6.border.rounded-lg",
	"div.rounded-xl.border",
	"div.rounded-lg.shadow-sm",
	"div.shadow-md.rounded",
	"div.grid > div",
	"div.flex > div",
}

// Default returns the four strategies in their fixed order.
func Default() []Strategy {
	return []Strategy{
		{Kind: Container, Selectors: containerSelectors},
		{Kind: StyledCard, Selectors: styledCardSelectors, MinLen: 50, Accept: validate.Vocabulary.HasJobIndicators},
		{Kind: ListItem, Selectors: []string{"li"}, MinLen: 30},
		{Kind: FullText, Selectors: []string{"div", "section", "article"}, MinLen: 100, Accept: looksLikeTitle},
	}
}

func looksLikeTitle(_ validate.Vocabulary, text string) bool {
	return extract.TitleShape.MatchString(text)
}

// Find runs one strategy. A node matched by several selectors is emitted
// once, at its first selector.
func (s Strategy) Find(d *doc.Document, v validate.Vocabulary) []Candidate {
	seen := map[*html.Node]bool{}
	var out []Candidate
	for _, sel := range s.Selectors {
		for _, el := range d.Query(sel) {
			n := el.Node()
			if seen[n] {
				continue
			}
			seen[n] = true

			text := el.Text()
			if s.MinLen > 0 && util.RuneLen(util.CleanText(text)) <= s.MinLen {
				continue
			}
			if s.Accept != nil && !s.Accept(v, text) {
				continue
			}
			out = append(out, Candidate{Element: el, Text: text, Kind: s.Kind})
		}
	}
	return out
}

// Run executes every strategy concurrently and concatenates their results in
// strategy order.
func Run(d *doc.Document, v validate.Vocabulary, strategies []Strategy) []Candidate {
	results := make([][]Candidate, len(strategies))

	var g errgroup.Group
	for i, s := range strategies {
		g.Go(func() error {
			results[i] = s.Find(d, v)
			return nil
		})
	}
	_ = g.Wait()

	var out []Candidate
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
