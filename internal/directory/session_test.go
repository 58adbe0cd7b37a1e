package directory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/directory"
	"github.com/rshade/companydir/internal/provider"
)

// staticProvider returns records, or err when set.
func staticProvider(records []company.Company, err error) provider.Provider {
	return provider.FetchFunc(func(context.Context) ([]company.Company, error) {
		if err != nil {
			return nil, err
		}
		return records, nil
	})
}

// numbered builds n technology companies named Company 01..n.
func numbered(n int) []company.Company {
	records := make([]company.Company, n)
	for i := range n {
		records[i] = company.Company{
			ID:        fmt.Sprintf("c%02d", i+1),
			Name:      fmt.Sprintf("Company %02d", i+1),
			Industry:  "Technology",
			Location:  "Austin, TX",
			Employees: (i + 1) * 10,
			Founded:   2000 + i,
		}
	}
	return records
}

func mixed() []company.Company {
	return []company.Company{
		{ID: "1", Name: "TechCorp", Industry: "Technology", Location: "San Francisco, CA", Employees: 5000, Description: "cloud"},
		{ID: "2", Name: "HealthFirst", Industry: "Healthcare", Location: "Boston, MA", Employees: 200, Description: "clinics"},
		{ID: "3", Name: "FinanceHub", Industry: "Finance", Location: "New York, NY", Employees: 50, Description: "fintech payments"},
	}
}

func ready(t *testing.T, records []company.Company, opts ...directory.Option) *directory.Session {
	t.Helper()
	s := directory.NewSession(staticProvider(records, nil), opts...)
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, directory.PhaseReady, s.Snapshot().Phase)
	return s
}

func TestNewSession_StartsLoading(t *testing.T) {
	s := directory.NewSession(staticProvider(mixed(), nil))
	snap := s.Snapshot()

	assert.Equal(t, directory.PhaseLoading, snap.Phase)
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.TotalCount)
	assert.Equal(t, company.DefaultCriteria(), snap.Criteria)
}

func TestSession_LoadSuccessDefaults(t *testing.T) {
	s := ready(t, numbered(10))
	snap := s.Snapshot()

	assert.Equal(t, company.DefaultCriteria(), snap.Criteria)
	assert.Equal(t, company.ViewGrid, snap.View)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, 10, snap.TotalCount)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Len(t, snap.Items, 9)
	assert.NoError(t, snap.Err)
	assert.Equal(t, []string{company.AllIndustries, "Technology"}, snap.Options.Industries)
}

func TestSession_TenRecordsSecondPage(t *testing.T) {
	s := ready(t, numbered(10))

	require.True(t, s.GoToPage(2))
	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Company 10", snap.Items[0].Name)
	assert.True(t, snap.HasPrevious())
	assert.False(t, snap.HasNext())
}

func TestSession_LoadFailure(t *testing.T) {
	cause := errors.New("connection refused")
	s := directory.NewSession(staticProvider(nil, cause))

	err := s.Load(context.Background())
	require.ErrorIs(t, err, provider.ErrUnavailable)
	assert.ErrorIs(t, err, cause)

	snap := s.Snapshot()
	assert.Equal(t, directory.PhaseFailed, snap.Phase)
	assert.Empty(t, snap.Items)
	assert.ErrorIs(t, snap.Err, provider.ErrUnavailable)
}

func TestSession_RetryResetsState(t *testing.T) {
	m, err := provider.NewMock(provider.WithDelay(0), provider.WithFailFirst(1), provider.WithRecords(mixed()))
	require.NoError(t, err)
	s := directory.NewSession(m)

	require.Error(t, s.Load(context.Background()))

	ticket, ok := s.Retry()
	require.True(t, ok)
	assert.Equal(t, directory.PhaseLoading, s.Snapshot().Phase)
	assert.NoError(t, s.Snapshot().Err)

	require.True(t, s.Complete(s.Fetch(context.Background(), ticket)))
	snap := s.Snapshot()
	assert.Equal(t, directory.PhaseReady, snap.Phase)
	assert.Equal(t, 3, snap.TotalCount)
	assert.Equal(t, company.DefaultCriteria(), snap.Criteria)
}

func TestSession_RetryOnlyFromFailed(t *testing.T) {
	s := ready(t, mixed())
	_, ok := s.Retry()
	assert.False(t, ok)
	assert.Equal(t, directory.PhaseReady, s.Snapshot().Phase)

	loading := directory.NewSession(staticProvider(mixed(), nil))
	_, ok = loading.Retry()
	assert.False(t, ok)
}

func TestSession_StaleResultDiscarded(t *testing.T) {
	s := directory.NewSession(staticProvider(mixed(), nil))
	ctx := context.Background()

	first := s.Begin()
	second := s.Begin()

	staleResult := s.Fetch(ctx, first)
	freshResult := s.Fetch(ctx, second)

	assert.False(t, s.Complete(staleResult))
	assert.Equal(t, directory.PhaseLoading, s.Snapshot().Phase)

	assert.True(t, s.Complete(freshResult))
	assert.Equal(t, directory.PhaseReady, s.Snapshot().Phase)

	// A result cannot be applied twice.
	assert.False(t, s.Complete(freshResult))
}

func TestSession_StaleFailureCannotOverwriteReady(t *testing.T) {
	calls := 0
	p := provider.FetchFunc(func(context.Context) ([]company.Company, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("slow and broken")
		}
		return mixed(), nil
	})
	s := directory.NewSession(p)
	ctx := context.Background()

	old := s.Begin()
	oldResult := s.Fetch(ctx, old)
	current := s.Begin()
	require.True(t, s.Complete(s.Fetch(ctx, current)))

	assert.False(t, s.Complete(oldResult))
	assert.Equal(t, directory.PhaseReady, s.Snapshot().Phase)
}

func TestSession_SettersIgnoredOutsideReady(t *testing.T) {
	s := directory.NewSession(staticProvider(mixed(), nil))

	assert.False(t, s.SetSearch("tech"))
	assert.False(t, s.SetIndustry("Technology"))
	assert.False(t, s.SetLocation("Boston, MA"))
	assert.False(t, s.SetSort(company.SortEmployeesDesc))
	assert.False(t, s.SetCriteria(company.DefaultCriteria()))
	assert.False(t, s.GoToPage(1))
	assert.False(t, s.NextPage())
	assert.False(t, s.PrevPage())
	assert.False(t, s.SetView(company.ViewTable))
	assert.False(t, s.ToggleView())

	assert.Equal(t, company.DefaultCriteria(), s.Snapshot().Criteria)
	assert.Equal(t, company.ViewGrid, s.Snapshot().View)
}

func TestSession_SearchScenario(t *testing.T) {
	s := ready(t, mixed())

	require.True(t, s.SetSearch("tech"))
	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "FinanceHub", snap.Items[0].Name)
	assert.Equal(t, "TechCorp", snap.Items[1].Name)
	assert.Equal(t, 2, snap.TotalCount)
}

func TestSession_EmployeesDescScenario(t *testing.T) {
	s := ready(t, mixed())

	require.True(t, s.SetSort(company.SortEmployeesDesc))
	var got []int
	for _, c := range s.Snapshot().Items {
		got = append(got, c.Employees)
	}
	assert.Equal(t, []int{5000, 200, 50}, got)
}

func TestSession_EmptyScenario(t *testing.T) {
	s := ready(t, mixed())

	require.True(t, s.SetIndustry("Healthcare"))
	require.True(t, s.SetLocation("San Francisco, CA"))
	snap := s.Snapshot()

	assert.True(t, snap.IsEmpty())
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.TotalPages)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.False(t, s.NextPage())
	assert.False(t, s.GoToPage(1))
}

func TestSession_PageResetsWhenCountChanges(t *testing.T) {
	records := numbered(20)
	records[0].Industry = "Energy"
	s := ready(t, records)

	require.True(t, s.GoToPage(3))
	assert.Equal(t, 3, s.Snapshot().CurrentPage)

	require.True(t, s.SetIndustry("Technology"))
	snap := s.Snapshot()
	assert.Equal(t, 19, snap.TotalCount)
	assert.Equal(t, 1, snap.CurrentPage)
}

func TestSession_PageKeptWhenCountUnchanged(t *testing.T) {
	s := ready(t, numbered(20))

	require.True(t, s.GoToPage(2))
	require.True(t, s.SetSort(company.SortFoundedDesc))
	assert.Equal(t, 2, s.Snapshot().CurrentPage)
}

func TestSession_NavigationGuard(t *testing.T) {
	s := ready(t, numbered(10))

	tests := []struct {
		name string
		page int
	}{
		{name: "zero", page: 0},
		{name: "negative", page: -1},
		{name: "past end", page: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, s.GoToPage(tt.page))
			assert.Equal(t, 1, s.Snapshot().CurrentPage)
		})
	}

	assert.False(t, s.PrevPage())
	assert.True(t, s.NextPage())
	assert.False(t, s.NextPage())
	assert.Equal(t, 2, s.Snapshot().CurrentPage)
	assert.True(t, s.PrevPage())
	assert.Equal(t, 1, s.Snapshot().CurrentPage)
}

func TestSession_ViewIndependentOfPipeline(t *testing.T) {
	s := ready(t, numbered(20))
	require.True(t, s.SetSearch("company 1"))
	require.True(t, s.GoToPage(2))
	before := s.Snapshot()

	require.True(t, s.ToggleView())
	after := s.Snapshot()
	assert.Equal(t, company.ViewTable, after.View)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.CurrentPage, after.CurrentPage)
	assert.Equal(t, before.Criteria, after.Criteria)

	require.True(t, s.SetView(company.ViewGrid))
	assert.Equal(t, company.ViewGrid, s.Snapshot().View)
	assert.False(t, s.SetView(company.ViewMode("cards")))
}

func TestSession_Options(t *testing.T) {
	s := ready(t, numbered(12), directory.WithPageSize(5), directory.WithDefaultView(company.ViewTable))
	snap := s.Snapshot()

	assert.Equal(t, 5, snap.PageSize)
	assert.Equal(t, 3, snap.TotalPages)
	assert.Equal(t, company.ViewTable, snap.View)

	meta := snap.Meta()
	assert.Equal(t, 12, meta.TotalItems)
	assert.True(t, meta.HasNext)
}

func TestSession_ResetCriteria(t *testing.T) {
	s := ready(t, mixed())
	require.True(t, s.SetSearch("zzz"))
	require.True(t, s.ResetCriteria())
	assert.Equal(t, 3, s.Snapshot().TotalCount)
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s := ready(t, mixed())
	snap := s.Snapshot()
	snap.Items[0].Name = "mutated"

	assert.NotEqual(t, "mutated", s.Snapshot().Items[0].Name)
	assert.Len(t, s.Filtered(), 3)
}

type closingProvider struct {
	provider.FetchFunc
	closed int
}

func (c *closingProvider) Close() error {
	c.closed++
	return nil
}

func TestSession_Close(t *testing.T) {
	p := &closingProvider{FetchFunc: func(context.Context) ([]company.Company, error) { return mixed(), nil }}
	s := directory.NewSession(p)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Close())
	assert.Equal(t, 1, p.closed)

	// Sources without resources close cleanly.
	assert.NoError(t, directory.NewSession(staticProvider(mixed(), nil)).Close())
}

func TestSession_Lookup(t *testing.T) {
	s := directory.NewSession(staticProvider(mixed(), nil))

	got, ok, err := s.Lookup(context.Background(), "2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "HealthFirst", got.Name)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "loading", directory.PhaseLoading.String())
	assert.Equal(t, "ready", directory.PhaseReady.String())
	assert.Equal(t, "failed", directory.PhaseFailed.String())
	assert.Equal(t, "phase(9)", directory.Phase(9).String())
}
