package extract

import (
	"regexp"
	"strings"
)

// pattern captures its value in group 1.
type pattern struct {
	re    *regexp.Regexp
	label string // fixed output; when set the match only selects it
}

func p(expr string) pattern { return pattern{re: regexp.MustCompile(expr)} }

func labeled(expr, label string) pattern {
	return pattern{re: regexp.MustCompile(expr), label: label}
}

// textMatch tries patterns in order over the line-structured text.
func textMatch(pats []pattern) step {
	return func(c *container) string {
		return firstMatch(c.text, pats)
	}
}

func firstMatch(text string, pats []pattern) string {
	for _, pt := range pats {
		m := pt.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if pt.label != "" {
			return pt.label
		}
		if len(m) > 1 {
			if v := trimValue(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

func trimValue(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "-–|·•,;:"))
}

// TitleShape matches role phrases such as "Senior Rust Engineer": an optional
// seniority word, up to three capitalised words, then a role noun.
var TitleShape = regexp.MustCompile(
	`\b((?:(?i:senior|junior|lead|staff|principal|mid-level|sr\.|jr\.)[ \t]+)?` +
		`(?:[A-Z][\w+#./-]*[ \t]+){0,3}?` +
		`(?i:developer|engineer|programmer|architect|consultant|sre))\b`)

var titlePatterns = []pattern{
	p(`(?i)\b(?:position|role|job title|title)[ \t]*:[ \t]*([^\n|]{5,150})`),
	{re: TitleShape},
}

var companyPatterns = []pattern{
	p(`(?i)\b(?:company|employer|organisation|organization)[ \t]*:[ \t]*([^\n|,]{2,50})`),
	p(`(?:\b(?:at|At)[ \t]+|@[ \t]*)([A-Z][\w&.'’-]*(?:[ \t]+(?:[A-Z][\w&.'’-]*|&))*)`),
}

var locationPatterns = []pattern{
	p(`\b([A-Z][a-z]+(?:[ \t][A-Z][a-z]+)?,[ \t]*[A-Z]{2})\b`),
	p(`(?i)\b(remote(?:[ \t]*\([^)\n]{1,40}\))?)`),
	p(`(?i)\b(hybrid|on-?site)\b`),
}

var salaryPatterns = []pattern{
	p(`(\$[ \t]?\d{1,3}(?:,\d{3})+(?:\.\d{2})?(?:[ \t]*(?:-|–|to)[ \t]*\$?[ \t]?\d{1,3}(?:,\d{3})+(?:\.\d{2})?)?)`),
	p(`(\$[ \t]?\d+(?:\.\d+)?[kK](?:[ \t]*(?:-|–|to)[ \t]*\$?[ \t]?\d+(?:\.\d+)?[kK])?)`),
	p(`([€£][ \t]?\d{1,3}(?:[,.]\d{3})*[kK]?(?:[ \t]*(?:-|–|to)[ \t]*[€£]?[ \t]?\d{1,3}(?:[,.]\d{3})*[kK]?)?)`),
	p(`(\d{1,3}(?:[,.]\d{3})+[ \t]?(?:USD|EUR|GBP|CHF))`),
	p(`(?i)\b(?:salary|compensation)[ \t]*:[ \t]*([^\n|]{2,60})`),
}

var jobTypePatterns = []pattern{
	labeled(`(?i)\bfull[\s-]?time\b`, "Full-time"),
	labeled(`(?i)\bpart[\s-]?time\b`, "Part-time"),
	labeled(`(?i)\bcontract(?:or)?\b`, "Contract"),
	labeled(`(?i)\bfreelance\b`, "Freelance"),
	labeled(`(?i)\binternship\b`, "Internship"),
	labeled(`(?i)\btemporary\b`, "Temporary"),
	labeled(`(?i)\bpermanent\b`, "Permanent"),
}

var experiencePatterns = []pattern{
	labeled(`(?i)\b(?:senior|sr\.)`, "Senior"),
	labeled(`(?i)\blead\b`, "Lead"),
	labeled(`(?i)\bprincipal\b`, "Principal"),
	labeled(`(?i)\bstaff\b`, "Staff"),
	labeled(`(?i)\b(?:mid[\s-]?level|intermediate)\b`, "Mid-Level"),
	labeled(`(?i)\b(?:junior|jr\.)`, "Junior"),
	labeled(`(?i)\b(?:entry[\s-]?level|graduate)\b`, "Entry-Level"),
	labeled(`(?i)\bintern\b`, "Intern"),
	p(`(?i)\b(\d{1,2}\+?[ \t]*(?:years?|yrs?))\b`),
}

const month = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?`

var datePatterns = []pattern{
	p(`\b(\d{4}-\d{2}-\d{2})\b`),
	p(`(?i)\b(\d{1,2}[ \t]*(?:minute|hour|day|week|month|year)s?[ \t]+ago)\b`),
	p(`(?i)\b(\d{1,2}[hdw][ \t]+ago)\b`),
	p(`(?i)\bposted(?:[ \t]+on)?[ \t]*:?[ \t]*(` + month + `[ \t]+\d{1,2}(?:,[ \t]*\d{4})?)`),
	p(`\b(` + month + `[ \t]+\d{1,2},[ \t]*\d{4})\b`),
	p(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
	p(`(?i)\b(today|yesterday|just now)\b`),
}

var remotePattern = regexp.MustCompile(`(?i)\b(?:remote|wfh|work[ \t-]from[ \t-]home|telecommut(?:e|ing)|fully distributed)\b`)
