package scrape

import (
	"bytes"
	"context"

	"jobhunt-scraper/internal/domain"
	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/extract"
	"jobhunt-scraper/internal/scrape/strategy"
	"jobhunt-scraper/internal/scrape/util"
)

// ProcessDocument turns one parsed page into records, in strategy order then
// document order. Records are not deduplicated here.
func (p *Pipeline) ProcessDocument(ctx context.Context, d *doc.Document, base string) []domain.JobRecord {
	env := extract.Env{
		Vocab:   p.Vocab,
		BaseURL: base,
		Detail:  p.detailFunc(ctx, base),
	}

	cands := strategy.Run(d, p.Vocab, p.Strategies)
	counts := map[strategy.Kind]int{}

	var out []domain.JobRecord
	for _, c := range cands {
		if keep, why := ShouldKeepCandidate(p.Vocab, c); !keep {
			p.skipped(c, why)
			continue
		}
		title := extract.Title(c.Element, env)
		if keep, why := ShouldKeepTitle(c.Kind, title); !keep {
			p.skipped(c, why)
			continue
		}

		j := extract.Record(c.Element, env)
		counts[c.Kind]++
		out = append(out, j)
	}

	for _, s := range p.Strategies {
		p.Log.Debug().
			Str("strategy", s.Kind.String()).
			Int("count", counts[s.Kind]).
			Msg("strategy finished")
	}
	return out
}

// ProcessHTML parses body and runs ProcessDocument over it.
func (p *Pipeline) ProcessHTML(ctx context.Context, body []byte, base string) ([]domain.JobRecord, error) {
	d, err := doc.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return p.ProcessDocument(ctx, d, base), nil
}

func (p *Pipeline) skipped(c strategy.Candidate, why string) {
	p.Log.Debug().
		Str("strategy", c.Kind.String()).
		Str("reason", why).
		Str("text", util.Truncate(util.CleanText(c.Text), 80)).
		Msg("skipped")
}
