// Package engine derives the displayed subset of a company collection from browsing criteria.
//
// Apply runs a fixed pipeline: search, industry, location, then a stable sort. Each stage reads the
// previous stage's output and none of them mutate the input slice.
package engine

import (
	"strings"

	"github.com/rshade/companydir/internal/company"
)

// Apply filters and sorts records according to criteria.
// It returns a new slice; records is never modified. Criteria that match nothing yield an empty
// slice, never an error.
func Apply(records []company.Company, criteria company.Criteria) []company.Company {
	filtered := make([]company.Company, 0, len(records))

	query := strings.ToLower(criteria.Search)
	for _, r := range records {
		if query != "" && !matchesSearch(r, query) {
			continue
		}
		if criteria.Industry != company.AllIndustries && r.Industry != criteria.Industry {
			continue
		}
		if criteria.Location != company.AllLocations && r.Location != criteria.Location {
			continue
		}
		filtered = append(filtered, r)
	}

	return NewSorter().Sort(filtered, criteria.Sort)
}

// matchesSearch reports whether the lowercase name or description contains lowered.
func matchesSearch(r company.Company, lowered string) bool {
	return strings.Contains(strings.ToLower(r.Name), lowered) ||
		strings.Contains(strings.ToLower(r.Description), lowered)
}
