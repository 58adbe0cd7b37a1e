package directory

import (
	"slices"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/pagination"
)

// Snapshot is a read-only projection of a Session for rendering.
type Snapshot struct {
	Phase       Phase
	Items       []company.Company
	TotalCount  int
	TotalPages  int
	CurrentPage int
	PageSize    int
	View        company.ViewMode
	Criteria    company.Criteria
	Options     company.FilterOptions
	Err         error
}

// IsEmpty reports a Ready session whose criteria match nothing.
func (s Snapshot) IsEmpty() bool {
	return s.Phase == PhaseReady && s.TotalCount == 0
}

// HasPrevious reports whether a previous page exists.
func (s Snapshot) HasPrevious() bool { return s.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (s Snapshot) HasNext() bool { return s.CurrentPage < s.TotalPages }

// Meta returns the pagination metadata of the visible page.
func (s Snapshot) Meta() pagination.PaginationMeta {
	return pagination.NewPaginationMeta(pagination.Page[company.Company]{
		Items:       s.Items,
		CurrentPage: s.CurrentPage,
		PageSize:    s.PageSize,
		TotalPages:  s.TotalPages,
		TotalItems:  s.TotalCount,
	})
}

// Snapshot returns the current projection. Slices are copies.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:       s.state.Phase,
		CurrentPage: s.state.Cursor.Page(),
		PageSize:    s.state.Cursor.PageSize(),
		View:        s.state.View,
		Criteria:    s.state.Criteria,
		Err:         s.state.Err,
		Items:       []company.Company{},
	}

	if s.state.Phase == PhaseReady {
		snap.Items = slices.Clone(s.page.Items)
		if snap.Items == nil {
			snap.Items = []company.Company{}
		}
		snap.TotalCount = len(s.filtered)
		snap.TotalPages = pagination.TotalPages(len(s.filtered), s.state.Cursor.PageSize())
		snap.Options = company.FilterOptions{
			Industries: slices.Clone(s.options.Industries),
			Locations:  slices.Clone(s.options.Locations),
		}
	}
	return snap
}

// Filtered returns every record matching the current criteria, in sorted order.
func (s *Session) Filtered() []company.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.filtered)
}
