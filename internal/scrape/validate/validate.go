// Package validate holds the pure predicates that decide whether a piece of
// text looks like a job posting, navigation chrome, or a plausible field value.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"jobhunt-scraper/internal/scrape/util"
)

const (
	minTitleLen    = 10
	maxTitleLen    = 150
	minCompanyLen  = 2
	maxCompanyLen  = 50
	minLocationLen = 2
	maxLocationLen = 30
)

// HasJobIndicators reports whether text mentions any job indicator keyword.
func (v Vocabulary) HasJobIndicators(text string) bool {
	return containsAny(strings.ToLower(text), v.JobIndicators)
}

// IsNavigationNoise reports whether text carries site chrome vocabulary.
// A match wins over any job indicator.
func (v Vocabulary) IsNavigationNoise(text string) bool {
	return containsAny(strings.ToLower(text), v.NavigationNoise)
}

func (v Vocabulary) IsPlausibleTitle(text string) bool {
	t := util.CleanText(text)
	n := utf8.RuneCountInString(t)
	if n < minTitleLen || n > maxTitleLen {
		return false
	}
	return strings.Contains(strings.ToLower(t), strings.ToLower(v.DomainKeyword))
}

func (v Vocabulary) IsPlausibleCompany(text string) bool {
	t := util.CleanText(text)
	n := utf8.RuneCountInString(t)
	if n < minCompanyLen || n > maxCompanyLen {
		return false
	}
	low := strings.ToLower(t)
	if strings.Contains(low, strings.ToLower(v.DomainKeyword)) || containsAny(low, v.CompanyStopwords) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t)
	return unicode.IsUpper(r)
}

func (v Vocabulary) IsPlausibleLocation(text string) bool {
	t := util.CleanText(text)
	n := utf8.RuneCountInString(t)
	if n < minLocationLen || n > maxLocationLen {
		return false
	}
	return containsWord(strings.ToLower(t), v.LocationKeywords)
}

func containsAny(low string, needles []string) bool {
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && strings.Contains(low, n) {
			return true
		}
	}
	return false
}

// containsWord is containsAny with letter/digit boundaries on both sides, so
// "us" does not hit "business".
func containsWord(low string, needles []string) bool {
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && IndexWord(low, n) >= 0 {
			return true
		}
	}
	return false
}

// IndexWord finds needle in s where neither neighbour is a letter or digit.
// Both arguments are expected in the same case.
func IndexWord(s, needle string) int {
	if needle == "" {
		return -1
	}
	off := 0
	for {
		i := strings.Index(s[off:], needle)
		if i < 0 {
			return -1
		}
		start := off + i
		end := start + len(needle)
		if !isWordRune(lastRune(s[:start])) && !isWordRune(firstRune(s[end:])) {
			return start
		}
		_, w := utf8.DecodeRuneInString(s[start:])
		off = start + w
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
