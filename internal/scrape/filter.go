package scrape

import (
	"jobhunt-scraper/internal/domain"
	"jobhunt-scraper/internal/scrape/strategy"
	"jobhunt-scraper/internal/scrape/validate"
)

// ShouldKeepCandidate screens a candidate before any field is extracted.
// Full-text candidates are judged on their title instead.
func ShouldKeepCandidate(v validate.Vocabulary, c strategy.Candidate) (keep bool, reason string) {
	if c.Kind == strategy.FullText {
		return true, ""
	}
	// 1) must look like a job at all
	if !v.HasJobIndicators(c.Text) {
		return false, "no_job_indicator"
	}
	// 2) navigation wins over any indicator
	if v.IsNavigationNoise(c.Text) {
		return false, "navigation"
	}
	return true, ""
}

// ShouldKeepTitle applies the record title rule to the extracted title.
func ShouldKeepTitle(kind strategy.Kind, title string) (keep bool, reason string) {
	if title == "" && kind == strategy.FullText {
		return false, "no_title"
	}
	if !(domain.JobRecord{Title: title}).Valid() {
		return false, "short_title"
	}
	return true, ""
}
