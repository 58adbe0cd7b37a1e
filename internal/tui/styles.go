package tui

import "github.com/charmbracelet/lipgloss"

// Colour palette.
const (
	colorPrimary  = lipgloss.Color("39")
	colorAccent   = lipgloss.Color("57")
	colorHighlite = lipgloss.Color("229")
	colorSubtle   = lipgloss.Color("241")
	colorBorder   = lipgloss.Color("240")
	colorCritical = lipgloss.Color("196")
	colorWarning  = lipgloss.Color("214")
	colorInfo     = lipgloss.Color("86")
)

// Shared text styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across renderers.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	CriticalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCritical)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorBorder).
				BorderBottom(true).
				Bold(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorHighlite).
				Background(colorAccent).
				Bold(false)
)

// Card styles for the grid view.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across renderers.
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	CardSelectedStyle = CardStyle.
				BorderForeground(colorPrimary)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(colorHighlite).
			Background(colorAccent).
			Padding(0, 1)
)
