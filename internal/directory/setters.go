package directory

import (
	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/pagination"
)

// SetSearch replaces the search text. Ignored unless Ready.
func (s *Session) SetSearch(q string) bool {
	return s.updateCriteria(func(c *company.Criteria) { c.Search = q })
}

// SetIndustry selects an industry, or company.AllIndustries for no restriction. Ignored unless Ready.
func (s *Session) SetIndustry(industry string) bool {
	return s.updateCriteria(func(c *company.Criteria) { c.Industry = industry })
}

// SetLocation selects a location, or company.AllLocations for no restriction. Ignored unless Ready.
func (s *Session) SetLocation(location string) bool {
	return s.updateCriteria(func(c *company.Criteria) { c.Location = location })
}

// SetSort selects the sort key. Ignored unless Ready.
func (s *Session) SetSort(key company.SortKey) bool {
	return s.updateCriteria(func(c *company.Criteria) { c.Sort = key })
}

// SetCriteria replaces all criteria at once. Ignored unless Ready.
func (s *Session) SetCriteria(criteria company.Criteria) bool {
	return s.updateCriteria(func(c *company.Criteria) { *c = criteria })
}

// ResetCriteria restores the default criteria. Ignored unless Ready.
func (s *Session) ResetCriteria() bool {
	return s.SetCriteria(company.DefaultCriteria())
}

func (s *Session) updateCriteria(mutate func(*company.Criteria)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseReady {
		return false
	}

	before := s.state.Criteria
	mutate(&s.state.Criteria)
	s.recomputeLocked()

	if before != s.state.Criteria {
		s.logger.Debug().
			Str("operation", "update_criteria").
			Str("search", s.state.Criteria.Search).
			Str("industry", s.state.Criteria.Industry).
			Str("location", s.state.Criteria.Location).
			Str("sort", string(s.state.Criteria.Sort)).
			Int("matches", len(s.filtered)).
			Msg("criteria changed")
	}
	return true
}

// GoToPage moves to page n when it is within [1, TotalPages] and reports whether it moved.
// Out-of-range requests and calls outside Ready are ignored.
func (s *Session) GoToPage(n int) bool {
	return s.movePage(func(c pagination.Cursor, count int) (pagination.Cursor, bool) {
		return c.GoTo(n, count)
	})
}

// NextPage moves forward one page if there is one.
func (s *Session) NextPage() bool {
	return s.movePage(pagination.Cursor.Next)
}

// PrevPage moves back one page if there is one.
func (s *Session) PrevPage() bool {
	return s.movePage(pagination.Cursor.Prev)
}

func (s *Session) movePage(move func(pagination.Cursor, int) (pagination.Cursor, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseReady {
		return false
	}

	cursor, ok := move(s.state.Cursor, len(s.filtered))
	if !ok {
		return false
	}
	s.state.Cursor = cursor
	s.page = pagination.Paginate(s.filtered, cursor.PageSize(), cursor.Page())
	return true
}

// SetView selects the presentation mode. It never touches the pipeline. Ignored unless Ready.
func (s *Session) SetView(v company.ViewMode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseReady {
		return false
	}
	if v != company.ViewGrid && v != company.ViewTable {
		return false
	}
	s.state.View = v
	return true
}

// ToggleView switches between grid and table. Ignored unless Ready.
func (s *Session) ToggleView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseReady {
		return false
	}
	s.state.View = s.state.View.Toggle()
	return true
}
