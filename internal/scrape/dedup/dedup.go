// Package dedup collapses records that share a lowercased title and company.
package dedup

import (
	"strings"

	"jobhunt-scraper/internal/domain"
)

// Key is the identity two records must share to be duplicates. Whitespace is
// significant; only case is folded.
func Key(j domain.JobRecord) string {
	return strings.ToLower(j.Title) + "-" + strings.ToLower(j.Company)
}

// Records keeps the first record for each key, preserving input order.
func Records(in []domain.JobRecord) []domain.JobRecord {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.JobRecord, 0, len(in))
	for _, j := range in {
		k := Key(j)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, j)
	}
	return out
}
