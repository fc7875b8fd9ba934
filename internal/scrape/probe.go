package scrape

import (
	"strings"

	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/util"
)

const (
	probePreviews    = 3
	probePreviewLen  = 100
	probeClassLimit  = 20
	probeClassPreLen = 50
)

// ProbeSelectors is the default list tried by Probe when tuning selectors
// for a new site.
var ProbeSelectors = []string{
	".job", ".job-card", ".job-listing", ".job-item", ".position", ".offer",
	".card", ".listing", "article",
	"div[class*='job']", "div[class*='card']", "li[class*='job']",
	"div > div > div", "div.grid > div", "div.flex > div",
}

var probeWords = []string{"rust", "developer", "engineer", "remote", "salary"}

type SelectorHit struct {
	Selector string
	Count    int
	Previews []string
}

type WordCount struct {
	Word  string
	Count int
}

type ClassedElement struct {
	Tag     string
	Class   string
	Preview string
}

// ProbeReport describes how a page responds to candidate selectors.
type ProbeReport struct {
	Size      int
	Selectors []SelectorHit
	Words     []WordCount
	Classes   []ClassedElement
}

// Probe reports, for each selector, how many nodes match plus a preview of
// the first few. An empty selectors list uses ProbeSelectors.
func Probe(d *doc.Document, selectors []string) ProbeReport {
	if len(selectors) == 0 {
		selectors = ProbeSelectors
	}
	raw := d.Raw()
	rep := ProbeReport{Size: len(raw)}

	for _, sel := range selectors {
		els := d.Query(sel)
		hit := SelectorHit{Selector: sel, Count: len(els)}
		for i := 0; i < len(els) && i < probePreviews; i++ {
			hit.Previews = append(hit.Previews, util.Truncate(util.CleanText(els[i].Text()), probePreviewLen))
		}
		rep.Selectors = append(rep.Selectors, hit)
	}

	low := strings.ToLower(raw)
	for _, w := range probeWords {
		if n := strings.Count(low, w); n > 0 {
			rep.Words = append(rep.Words, WordCount{Word: w, Count: n})
		}
	}

	for _, el := range d.Query("[class]") {
		if len(rep.Classes) == probeClassLimit {
			break
		}
		class, _ := el.Attr("class")
		rep.Classes = append(rep.Classes, ClassedElement{
			Tag:     el.Tag(),
			Class:   class,
			Preview: util.Truncate(util.CleanText(el.Text()), probeClassPreLen),
		})
	}
	return rep
}
