package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/directory"
	"github.com/rshade/companydir/internal/tui/detail"
)

const (
	appTitle     = "Company Directory"
	listHelpText = "[/] Search  [i] Industry  [o] Location  [s] Sort  [v] View  [n/p] Page  " +
		"[←↑↓→] Select  [Enter] Details  [q] Quit"
	resetHelpText = "  [x] Reset"
	detailHelpText = "[Esc] Back  [q] Quit"
	pickerHelpText = "[↑↓] Move  [Enter] Select  [Esc] Cancel"
)

// View renders the current view.
func (m *DirectoryModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateError:
		return RenderError(m.snapshot.Err, m.width, true)
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStatePicker:
		return m.renderPickerView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *DirectoryModel) renderListView() string {
	sections := []string{
		HeaderStyle.Render(appTitle),
		m.renderFilterBar(),
		m.renderStatusBar(),
		RenderPage(m.snapshot.Items, m.snapshot.View, m.width, m.selected),
	}

	if footer := m.renderPaginationFooter(); footer != "" {
		sections = append(sections, footer)
	}

	if m.showSearch {
		sections = append(sections, LabelStyle.Render("Search: ")+m.textInput.View())
	}

	help := listHelpText
	if !m.snapshot.Criteria.IsDefault() {
		help += resetHelpText
	}
	sections = append(sections, SubtleStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilterBar shows the active criteria.
func (m *DirectoryModel) renderFilterBar() string {
	c := m.snapshot.Criteria
	search := c.Search
	if search == "" {
		search = SubtleStyle.Render("(none)")
	} else {
		search = ValueStyle.Render(search)
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s",
		LabelStyle.Render("Search:"), search,
		LabelStyle.Render("Industry:"), ValueStyle.Render(c.Industry),
		LabelStyle.Render("Location:"), ValueStyle.Render(c.Location),
	)
}

// renderStatusBar shows the result count, sort and view.
func (m *DirectoryModel) renderStatusBar() string {
	return fmt.Sprintf("%s  |  %s %s  |  %s %s",
		InfoStyle.Render(ResultCount(m.snapshot.TotalCount)),
		LabelStyle.Render("Sort:"), m.snapshot.Criteria.Sort.Label(),
		LabelStyle.Render("View:"), viewLabel(m.snapshot.View),
	)
}

// renderPaginationFooter is shown only when there is more than one page.
func (m *DirectoryModel) renderPaginationFooter() string {
	if len(m.snapshot.Items) == 0 || m.snapshot.TotalPages <= 1 {
		return ""
	}
	return RenderPagination(m.snapshot.CurrentPage, m.snapshot.TotalPages)
}

func (m *DirectoryModel) renderPickerView() string {
	if m.picker == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(m.picker.title()),
		"",
		m.picker.list.View(),
		"",
		SubtleStyle.Render(m.picker.position()+"  "+pickerHelpText),
	)
}

func (m *DirectoryModel) renderDetailView() string {
	switch m.detail.Status() {
	case detail.StatusLoading:
		return RenderLoading(m.loading)
	case detail.StatusError:
		return lipgloss.JoinVertical(lipgloss.Left,
			CriticalStyle.Render("Could not load company "+m.detail.ID()),
			SubtleStyle.Render(m.detail.Err().Error()),
			"",
			WarningStyle.Render("[r] Retry  [Esc] Back  [q] Quit"),
		)
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderCompanyDetail(m.detail.Company(), m.width),
			SubtleStyle.Render(detailHelpText),
		)
	}
}

// ResultCount renders "N companies found", singular for one.
func ResultCount(n int) string {
	noun := "companies"
	if n == 1 {
		noun = "company"
	}
	return fmt.Sprintf("%d %s found", n, noun)
}

// RenderPagination renders a numbered page strip, e.g. "‹ Prev  1 [2] 3  Next ›  Page 2/3".
func RenderPagination(current, total int) string {
	var b strings.Builder
	if current > 1 {
		b.WriteString("‹ Prev  ")
	} else {
		b.WriteString(SubtleStyle.Render("‹ Prev  "))
	}
	for p := 1; p <= total; p++ {
		if p == current {
			b.WriteString(TableSelectedStyle.Render(fmt.Sprintf("[%d]", p)))
		} else {
			fmt.Fprintf(&b, " %d ", p)
		}
	}
	if current < total {
		b.WriteString("  Next ›")
	} else {
		b.WriteString(SubtleStyle.Render("  Next ›"))
	}
	fmt.Fprintf(&b, "  Page %d/%d", current, total)
	return b.String()
}

// RenderSnapshot renders a non-interactive view of a session snapshot: the failure, or the result
// count, the page in its view mode and the pagination strip.
func RenderSnapshot(snap directory.Snapshot, width int) string {
	if snap.Phase == directory.PhaseFailed {
		return RenderError(snap.Err, width, false)
	}
	sections := []string{
		InfoStyle.Render(ResultCount(snap.TotalCount)) + SubtleStyle.Render("  Sort: "+snap.Criteria.Sort.Label()),
		RenderPage(snap.Items, snap.View, width, noSelection),
	}
	if len(snap.Items) > 0 && snap.TotalPages > 1 {
		sections = append(sections, RenderPagination(snap.CurrentPage, snap.TotalPages))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func viewLabel(v company.ViewMode) string {
	if v == company.ViewTable {
		return "Table"
	}
	return "Grid"
}
