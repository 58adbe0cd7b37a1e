package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/directory"
)

func TestFormatEmployees(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{in: 0, want: "0"},
		{in: 950, want: "950"},
		{in: 5000, want: "5,000"},
		{in: 1234567, want: "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEmployees(tt.in))
	}
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 3, GridColumns(200))
	assert.Equal(t, 3, GridColumns(120))
	assert.Equal(t, 2, GridColumns(70))
	assert.Equal(t, 1, GridColumns(40))
	assert.Equal(t, 1, GridColumns(0))
}

func TestRenderPage(t *testing.T) {
	items := testCompanies(4)

	t.Run("empty page shows empty state", func(t *testing.T) {
		for _, view := range []company.ViewMode{company.ViewGrid, company.ViewTable} {
			out := RenderPage(nil, view, 120, noSelection)
			assert.Contains(t, out, EmptyTitle)
			assert.Contains(t, out, "Try adjusting your filters")
		}
	})

	t.Run("grid", func(t *testing.T) {
		out := RenderPage(items, company.ViewGrid, 120, 0)
		for _, c := range items {
			assert.Contains(t, out, c.Name)
		}
		assert.Contains(t, out, "1,000 employees")
		assert.Contains(t, out, "Founded 1990")
		assert.Contains(t, out, "$1M revenue")
	})

	t.Run("table", func(t *testing.T) {
		out := RenderPage(items, company.ViewTable, 120, noSelection)
		for _, header := range []string{"Company", "Industry", "Location", "Employees", "Founded", "Revenue"} {
			assert.Contains(t, out, header)
		}
		assert.Contains(t, out, "TechCorp")
		assert.Contains(t, out, "1,000")
	})
}

func TestRenderError(t *testing.T) {
	out := RenderError(errors.New("company data unavailable: boom"), 100, true)
	assert.Contains(t, out, ErrorTitle)
	assert.Contains(t, out, "Please try again.")
	assert.Contains(t, out, "[r] Retry")

	out = RenderError(nil, 100, false)
	assert.NotContains(t, out, "[r] Retry")
}

func TestRenderCompanyDetail(t *testing.T) {
	c := testCompanies(1)[0]
	out := RenderCompanyDetail(c, 100)

	assert.Contains(t, out, "TECHCORP")
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, company.PlaceholderLogo)
	assert.Contains(t, out, "ABOUT")
}

func TestRenderLoading(t *testing.T) {
	assert.Equal(t, "Loading...", RenderLoading(nil))
	assert.Contains(t, RenderLoading(NewLoadingState()), "Loading companies...")
}

func TestResultCount(t *testing.T) {
	assert.Equal(t, "0 companies found", ResultCount(0))
	assert.Equal(t, "1 company found", ResultCount(1))
	assert.Equal(t, "12 companies found", ResultCount(12))
}

func TestRenderPagination(t *testing.T) {
	out := RenderPagination(2, 3)
	assert.Contains(t, out, "Page 2/3")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "Prev")
	assert.Contains(t, out, "Next")
}

func TestRenderSnapshot(t *testing.T) {
	snap := directory.Snapshot{
		Phase:       directory.PhaseReady,
		Items:       testCompanies(2),
		TotalCount:  11,
		TotalPages:  2,
		CurrentPage: 1,
		View:        company.ViewTable,
		Criteria:    company.DefaultCriteria(),
	}
	out := RenderSnapshot(snap, 120)
	assert.Contains(t, out, "11 companies found")
	assert.Contains(t, out, "Name (A-Z)")
	assert.Contains(t, out, "Page 1/2")

	failed := directory.Snapshot{Phase: directory.PhaseFailed, Err: errors.New("down")}
	assert.Contains(t, RenderSnapshot(failed, 120), ErrorTitle)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdef", truncate("abcdef", 10))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "a", truncate("abcdef", 1))
	assert.Equal(t, "abcdef", truncate("abcdef", 0))
}
