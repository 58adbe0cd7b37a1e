package company

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel selections meaning "do not filter on this field".
const (
	AllIndustries = "All Industries"
	AllLocations  = "All Locations"
)

// SortKey selects the ordering applied to filtered records.
type SortKey string

// Supported sort keys.
const (
	SortNameAsc       SortKey = "name-asc"
	SortNameDesc      SortKey = "name-desc"
	SortEmployeesAsc  SortKey = "employees-asc"
	SortEmployeesDesc SortKey = "employees-desc"
	SortFoundedAsc    SortKey = "founded-asc"
	SortFoundedDesc   SortKey = "founded-desc"

	// DefaultSort is the sort key of a fresh session.
	DefaultSort = SortNameAsc
)

// ErrInvalidSortKey is returned by ParseSortKey for unsupported keys.
var ErrInvalidSortKey = errors.New("invalid sort key")

// SortKeys returns the supported sort keys in display order.
func SortKeys() []SortKey {
	return []SortKey{
		SortNameAsc, SortNameDesc,
		SortEmployeesAsc, SortEmployeesDesc,
		SortFoundedAsc, SortFoundedDesc,
	}
}

// Label returns a human-readable label for the key.
func (k SortKey) Label() string {
	switch k {
	case SortNameAsc:
		return "Name (A-Z)"
	case SortNameDesc:
		return "Name (Z-A)"
	case SortEmployeesAsc:
		return "Employees (Low to High)"
	case SortEmployeesDesc:
		return "Employees (High to Low)"
	case SortFoundedAsc:
		return "Founded (Oldest)"
	case SortFoundedDesc:
		return "Founded (Newest)"
	default:
		return string(k)
	}
}

// IsValid reports whether k is one of the supported keys.
func (k SortKey) IsValid() bool {
	for _, known := range SortKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// Next returns the key following k in display order, wrapping around.
// Unknown keys advance to the first key.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	for i, known := range keys {
		if k == known {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

// ParseSortKey accepts both "employees-desc" and "employees:desc" forms.
// Field and order are case-insensitive.
func ParseSortKey(s string) (SortKey, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.Replace(normalized, ":", "-", 1)
	key := SortKey(normalized)
	if !key.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
	return key, nil
}

// Criteria is the composable set of browsing criteria.
type Criteria struct {
	Search   string  `json:"search"   yaml:"search"`
	Industry string  `json:"industry" yaml:"industry"`
	Location string  `json:"location" yaml:"location"`
	Sort     SortKey `json:"sort"     yaml:"sort"`
}

// DefaultCriteria returns the criteria of a fresh session.
func DefaultCriteria() Criteria {
	return Criteria{
		Search:   "",
		Industry: AllIndustries,
		Location: AllLocations,
		Sort:     DefaultSort,
	}
}

// IsDefault reports whether no filter narrows the result and the default sort is active.
func (c Criteria) IsDefault() bool {
	return c == DefaultCriteria()
}

// FilterOptions are the values offered for the industry and location selections.
// Each list begins with its sentinel.
type FilterOptions struct {
	Industries []string `json:"industries" yaml:"industries"`
	Locations  []string `json:"locations"  yaml:"locations"`
}

// OptionsFrom derives the selectable industries and locations from a collection.
// Values are distinct and sorted; empty values are skipped.
func OptionsFrom(records []Company) FilterOptions {
	industries := make(map[string]struct{})
	locations := make(map[string]struct{})
	for _, r := range records {
		if r.Industry != "" {
			industries[r.Industry] = struct{}{}
		}
		if r.Location != "" {
			locations[r.Location] = struct{}{}
		}
	}
	return FilterOptions{
		Industries: withSentinel(AllIndustries, industries),
		Locations:  withSentinel(AllLocations, locations),
	}
}

func withSentinel(sentinel string, values map[string]struct{}) []string {
	out := make([]string, 0, len(values)+1)
	for v := range values {
		out = append(out, v)
	}
	sort.Strings(out)
	return append([]string{sentinel}, out...)
}
