package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ViewState is the screen an interactive model is showing.
type ViewState int

const (
	// ViewStateLoading shows the spinner while the collection is fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the current page of companies.
	ViewStateList
	// ViewStateDetail shows a single company.
	ViewStateDetail
	// ViewStatePicker shows the industry or location picker.
	ViewStatePicker
	// ViewStateError shows the fetch failure and offers a retry.
	ViewStateError
	// ViewStateQuitting is entered just before the program exits.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyS        = "s"
	keyV        = "v"
	keyI        = "i"
	keyO        = "o"
	keyN        = "n"
	keyP        = "p"
	keyR        = "r"
	keyX        = "x"
	keyPgDown   = "pgdown"
	keyPgUp     = "pgup"
	keyUp       = "up"
	keyDown     = "down"
	keyLeft     = "left"
	keyRight    = "right"
	keyVimUp    = "k"
	keyVimDown  = "j"
	keyVimLeft  = "h"
	keyVimRight = "l"
)

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth         = 120
	defaultHeight        = 40
	minHeight            = 5
	borderPadding        = 2
	filterInputCharLimit = 100
	filterInputWidth     = 40
)

// LoadingState is a spinner with a message.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a spinner with the default loading message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading companies..."}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner animation.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// OutputMode is how results are presented.
type OutputMode int

const (
	// OutputModePlain prints unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled prints lipgloss-styled text without interaction.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DetectOutputMode picks the output mode. An explicit plain request, NO_COLOR, CI or a non-terminal
// stdout all degrade the mode.
func DetectOutputMode(forcePlain, noColor, ci bool) OutputMode {
	if forcePlain {
		return OutputModePlain
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if !IsTTY() {
		return OutputModePlain
	}
	if ci || os.Getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or defaultWidth when it cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
