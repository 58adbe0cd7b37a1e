package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/companydir/internal/company"
)

func names(records []company.Company) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestSorter_NameUsesCollation(t *testing.T) {
	records := []company.Company{
		{ID: "1", Name: "zeta"},
		{ID: "2", Name: "Alpha"},
		{ID: "3", Name: "Émile"},
		{ID: "4", Name: "beta"},
	}
	s := NewSorter()

	assert.Equal(t, []string{"Alpha", "beta", "Émile", "zeta"}, names(s.Sort(records, company.SortNameAsc)))
	assert.Equal(t, []string{"zeta", "Émile", "beta", "Alpha"}, names(s.Sort(records, company.SortNameDesc)))
}

func TestSorter_IsStable(t *testing.T) {
	records := []company.Company{
		{ID: "1", Name: "First", Employees: 200, Founded: 2000},
		{ID: "2", Name: "Second", Employees: 50, Founded: 2000},
		{ID: "3", Name: "Third", Employees: 200, Founded: 1990},
		{ID: "4", Name: "Fourth", Employees: 50, Founded: 2000},
	}
	s := NewSorter()

	tests := []struct {
		key  company.SortKey
		want []string
	}{
		{company.SortEmployeesAsc, []string{"2", "4", "1", "3"}},
		{company.SortEmployeesDesc, []string{"1", "3", "2", "4"}},
		{company.SortFoundedAsc, []string{"3", "1", "2", "4"}},
		{company.SortFoundedDesc, []string{"1", "2", "4", "3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			sorted := s.Sort(records, tt.key)
			got := make([]string, len(sorted))
			for i, r := range sorted {
				got[i] = r.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSorter_Comparator(t *testing.T) {
	s := NewSorter()
	assert.Nil(t, s.Comparator("bogus"))
	for _, key := range s.ValidKeys() {
		assert.NotNil(t, s.Comparator(key), key)
	}
	assert.Equal(t, company.SortKeys(), s.ValidKeys())
}

func TestSorter_ReturnsCopy(t *testing.T) {
	records := []company.Company{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}}
	s := NewSorter()

	sorted := s.Sort(records, company.SortNameAsc)
	sorted[0].Name = "changed"

	assert.Equal(t, "B", records[0].Name)
	assert.Equal(t, "A", records[1].Name)
}
