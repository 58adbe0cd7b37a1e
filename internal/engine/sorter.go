package engine

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/companydir/internal/company"
)

// CompareFunc orders two records: negative when a sorts before b, zero when equal.
type CompareFunc func(a, b company.Company) int

// Sorter orders company records by a sort key.
//
// Name ordering uses an English collator so that case and accents sort the way a reader expects
// rather than by byte value. A Sorter is not safe for concurrent use; collators keep internal buffers.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter creates a Sorter with an English collator.
func NewSorter() *Sorter {
	return &Sorter{collator: collate.New(language.English)}
}

// ValidKeys returns all supported sort keys, in the order the sort cycle visits them.
func (s *Sorter) ValidKeys() []company.SortKey {
	return company.SortKeys()
}

// Comparator returns the comparison for key, or nil when the key is unknown.
func (s *Sorter) Comparator(key company.SortKey) CompareFunc {
	switch key {
	case company.SortNameAsc:
		return s.compareName
	case company.SortNameDesc:
		return reverse(s.compareName)
	case company.SortEmployeesAsc:
		return compareEmployees
	case company.SortEmployeesDesc:
		return reverse(compareEmployees)
	case company.SortFoundedAsc:
		return compareFounded
	case company.SortFoundedDesc:
		return reverse(compareFounded)
	default:
		return nil
	}
}

// Sort returns a stably sorted copy of records.
// Records that compare equal keep their input order. An unknown key returns an unsorted copy.
func (s *Sorter) Sort(records []company.Company, key company.SortKey) []company.Company {
	sorted := make([]company.Company, len(records))
	copy(sorted, records)

	compare := s.Comparator(key)
	if compare == nil {
		return sorted
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

func (s *Sorter) compareName(a, b company.Company) int {
	return s.collator.CompareString(a.Name, b.Name)
}

func compareEmployees(a, b company.Company) int {
	return cmp.Compare(a.Employees, b.Employees)
}

func compareFounded(a, b company.Company) int {
	return cmp.Compare(a.Founded, b.Founded)
}

// reverse flips a comparison. Equal records still compare equal, so stability holds for
// descending keys too.
func reverse(f CompareFunc) CompareFunc {
	return func(a, b company.Company) int {
		return f(b, a)
	}
}
