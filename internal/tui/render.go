package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/companydir/internal/company"
)

// Grid layout constants.
const (
	maxGridColumns   = 3
	minCardWidth     = 34
	cardGap          = 1
	cardDescLines    = 3
	cardChromeWidth  = 4
	noSelection      = -1
	emptyStateWidth  = 60
	errorStateWidth  = 64
	detailLabelWidth = 14
)

// Table column widths.
const (
	colWidthCompany   = 28
	colWidthIndustry  = 14
	colWidthLocation  = 20
	colWidthEmployees = 10
	colWidthFounded   = 8
	colWidthRevenue   = 9
)

// Copy shown for the empty and error states.
const (
	EmptyTitle   = "No companies found"
	EmptyMessage = "Try adjusting your filters or search query to find what you're looking for."
	ErrorTitle   = "Error Loading Companies"
	ErrorMessage = "There was an error loading the company data. Please try again."
)

//nolint:gochecknoglobals // Printer is safe for concurrent use and costly to rebuild per call.
var numberPrinter = message.NewPrinter(language.English)

// FormatEmployees renders an employee count with thousands separators, e.g. 5,000.
func FormatEmployees(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// RenderPage renders one page of companies in the given view. It never reorders or filters items.
// selected is the index of the highlighted company, or -1 for none.
func RenderPage(items []company.Company, view company.ViewMode, width, selected int) string {
	if len(items) == 0 {
		return RenderEmpty(width)
	}
	if view == company.ViewTable {
		t := NewCompanyTable(items, len(items)+1)
		if selected >= 0 && selected < len(items) {
			t.SetCursor(selected)
		} else {
			s := tableStyles()
			s.Selected = lipgloss.NewStyle()
			t.SetStyles(s)
		}
		return t.View()
	}
	return renderGrid(items, width, selected)
}

// GridColumns returns how many cards fit side by side in width.
func GridColumns(width int) int {
	cols := width / (minCardWidth + cardGap)
	return max(1, min(maxGridColumns, cols))
}

func renderGrid(items []company.Company, width, selected int) string {
	cols := GridColumns(width)
	cardWidth := max(minCardWidth, (width-cardGap*(cols-1))/cols) - borderPadding

	rows := make([]string, 0, (len(items)+cols-1)/cols)
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		cards := make([]string, 0, cols*2)
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, renderCard(items[i], cardWidth, i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders a single company card of the given outer width.
func renderCard(c company.Company, width int, selected bool) string {
	inner := max(1, width-cardChromeWidth)
	body := lipgloss.NewStyle().Width(inner)

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(truncate(c.Name, inner)))
	content.WriteString("\n")
	content.WriteString(SubtleStyle.Render(truncate(c.Website, inner)))
	content.WriteString("\n\n")
	content.WriteString(body.MaxHeight(cardDescLines).Render(c.Description))
	content.WriteString("\n\n")
	content.WriteString(BadgeStyle.Render(c.Industry))
	content.WriteString("\n\n")
	content.WriteString(LabelStyle.Render(truncate(c.Location, inner)))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render(FormatEmployees(c.Employees) + " employees"))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Founded " + strconv.Itoa(c.Founded)))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render(c.Revenue + " revenue"))

	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	return style.Width(width).Render(content.String())
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	return s
}

// NewCompanyTable creates a table model for one page of companies.
func NewCompanyTable(items []company.Company, height int) table.Model {
	columns := []table.Column{
		{Title: "Company", Width: colWidthCompany},
		{Title: "Industry", Width: colWidthIndustry},
		{Title: "Location", Width: colWidthLocation},
		{Title: "Employees", Width: colWidthEmployees},
		{Title: "Founded", Width: colWidthFounded},
		{Title: "Revenue", Width: colWidthRevenue},
	}

	rows := make([]table.Row, len(items))
	for i, c := range items {
		rows[i] = table.Row{
			truncate(c.Name, colWidthCompany),
			truncate(c.Industry, colWidthIndustry),
			truncate(c.Location, colWidthLocation),
			fmt.Sprintf("%*s", colWidthEmployees, FormatEmployees(c.Employees)),
			fmt.Sprintf("%*d", colWidthFounded, c.Founded),
			fmt.Sprintf("%*s", colWidthRevenue, c.Revenue),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(minHeight, height)),
	)
	t.SetStyles(tableStyles())
	return t
}

// RenderEmpty renders the state shown when no company matches the criteria.
func RenderEmpty(width int) string {
	w := min(emptyStateWidth, max(1, width-borderPadding))
	content := HeaderStyle.Render(EmptyTitle) + "\n\n" +
		lipgloss.NewStyle().Width(w).Render(SubtleStyle.Render(EmptyMessage))
	return lipgloss.NewStyle().Padding(1, borderPadding).Render(content)
}

// RenderError renders the failure state. With retry set, it offers the retry key.
func RenderError(err error, width int, retry bool) string {
	w := min(errorStateWidth, max(1, width-borderPadding))

	var content strings.Builder
	content.WriteString(CriticalStyle.Render(ErrorTitle))
	content.WriteString("\n\n")
	content.WriteString(lipgloss.NewStyle().Width(w - borderPadding).Render(ErrorMessage))
	if err != nil {
		content.WriteString("\n\n")
		content.WriteString(SubtleStyle.Width(w - borderPadding).Render(err.Error()))
	}
	if retry {
		content.WriteString("\n\n")
		content.WriteString(WarningStyle.Render("[r] Retry  [q] Quit"))
	}
	return BoxStyle.Width(w).Render(content.String())
}

// RenderLoading returns the string to display for a loading screen.
// If loading is nil, it returns the plain text "Loading...".
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return fmt.Sprintf("\n %s %s\n\n", loading.spinner.View(), loading.message)
}

// RenderCompanyDetail renders a boxed detail view of one company.
func RenderCompanyDetail(c company.Company, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(strings.ToUpper(c.Name)))
	content.WriteString("\n\n")

	field := func(label, value string) {
		content.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", detailLabelWidth, label+":")))
		content.WriteString(ValueStyle.Render(value))
		content.WriteString("\n")
	}
	field("ID", c.ID)
	field("Industry", c.Industry)
	field("Location", c.Location)
	field("Employees", FormatEmployees(c.Employees))
	field("Founded", strconv.Itoa(c.Founded))
	field("Revenue", c.Revenue)
	field("Website", c.Website)
	field("Logo", c.LogoRef())

	if c.Description != "" {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("ABOUT"))
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Width(max(1, width-borderPadding*2)).Render(c.Description))
		content.WriteString("\n")
	}

	return BoxStyle.Width(max(1, width-borderPadding)).Render(content.String())
}

// truncate shortens s to maxLen runes, marking the cut with an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
