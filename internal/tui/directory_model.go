package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/directory"
	"github.com/rshade/companydir/internal/logging"
	"github.com/rshade/companydir/internal/tui/detail"
)

// directoryLoadedMsg carries a finished fetch back to the model.
type directoryLoadedMsg struct {
	result directory.Result
}

// DirectoryModel is the Bubble Tea model for browsing the company directory.
type DirectoryModel struct {
	ctx     context.Context
	session *directory.Session

	// View state
	state    ViewState
	snapshot directory.Snapshot
	selected int

	// Interactive components
	textInput  textinput.Model
	showSearch bool
	picker     *picker
	detail     detail.Model

	// Display configuration
	width  int
	height int

	// Loading state
	loading *LoadingState
}

// NewDirectoryModel creates a model over session. The fetch starts in Init.
func NewDirectoryModel(ctx context.Context, session *directory.Session) *DirectoryModel {
	return &DirectoryModel{
		ctx:       ctx,
		session:   session,
		state:     ViewStateLoading,
		snapshot:  session.Snapshot(),
		textInput: newSearchInput(),
		loading:   NewLoadingState(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search companies..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// Init begins loading the collection.
func (m *DirectoryModel) Init() tea.Cmd {
	ticket := m.session.Begin()
	m.sync()
	return tea.Batch(m.loading.Init(), m.fetchCmd(ticket))
}

func (m *DirectoryModel) fetchCmd(ticket directory.Ticket) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return directoryLoadedMsg{result: session.Fetch(ctx, ticket)}
	}
}

// Update handles messages and updates the model state.
func (m *DirectoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.picker != nil {
			m.picker.list.SetSize(msg.Width, max(minHeight, msg.Height-pickerChrome))
		}
		return m, nil
	case directoryLoadedMsg:
		return m.handleLoaded(msg)
	case detail.LoadedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case spinner.TickMsg:
		if m.spinning() {
			return m, m.loading.Update(msg)
		}
		return m, nil
	}

	if m.showSearch {
		return m.handleSearchInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStatePicker:
		return m.handlePickerUpdate(msg)
	case ViewStateError:
		return m.handleErrorUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

// spinning reports whether a spinner is on screen.
func (m *DirectoryModel) spinning() bool {
	return m.state == ViewStateLoading ||
		(m.state == ViewStateDetail && m.detail.Status() == detail.StatusLoading)
}

func (m *DirectoryModel) handleLoaded(msg directoryLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.session.Complete(msg.result) {
		return m, nil
	}
	m.sync()

	log := logging.FromContext(m.ctx)
	if m.snapshot.Phase == directory.PhaseFailed {
		log.Warn().Ctx(m.ctx).Str("component", "tui").Err(m.snapshot.Err).Msg("directory load failed")
		m.state = ViewStateError
		return m, nil
	}
	log.Debug().Ctx(m.ctx).Str("component", "tui").Int("count", m.snapshot.TotalCount).Msg("directory ready")
	m.state = ViewStateList
	return m, nil
}

// sync refreshes the cached snapshot and keeps the selection on the page.
func (m *DirectoryModel) sync() {
	m.snapshot = m.session.Snapshot()
	if m.selected >= len(m.snapshot.Items) {
		m.selected = max(0, len(m.snapshot.Items)-1)
	}
}

func (m *DirectoryModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && isQuit(keyMsg) {
		return m.quit()
	}
	return m, nil
}

func (m *DirectoryModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			m.showSearch = false
			m.textInput.Blur()
			return m, nil
		case keyEsc:
			m.showSearch = false
			m.textInput.Blur()
			m.textInput.SetValue("")
			m.applySearch()
			return m, nil
		case keyCtrlC:
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applySearch()
	return m, cmd
}

// applySearch pushes the input value into the session when it changed.
func (m *DirectoryModel) applySearch() {
	if m.textInput.Value() == m.snapshot.Criteria.Search {
		return
	}
	if m.session.SetSearch(m.textInput.Value()) {
		m.selected = 0
		m.sync()
	}
}

//nolint:cyclop,funlen // Key dispatch is a flat switch over the list bindings.
func (m *DirectoryModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		return m.quit()
	case keySlash:
		m.showSearch = true
		m.textInput.SetValue(m.snapshot.Criteria.Search)
		m.textInput.CursorEnd()
		return m, m.textInput.Focus()
	case keyI:
		m.openPicker(pickIndustry)
	case keyO:
		m.openPicker(pickLocation)
	case keyS:
		m.session.SetSort(m.snapshot.Criteria.Sort.Next())
		m.sync()
	case keyV:
		m.session.ToggleView()
		m.sync()
	case keyN, keyPgDown:
		if m.session.NextPage() {
			m.selected = 0
			m.sync()
		}
	case keyP, keyPgUp:
		if m.session.PrevPage() {
			m.selected = 0
			m.sync()
		}
	case keyX:
		if m.session.ResetCriteria() {
			m.textInput.SetValue("")
			m.selected = 0
			m.sync()
		}
	case keyEsc:
		if m.snapshot.Criteria.Search != "" {
			m.textInput.SetValue("")
			m.applySearch()
		}
	case keyEnter:
		return m.openDetail()
	case keyUp, keyVimUp:
		m.moveSelection(-m.rowStride())
	case keyDown, keyVimDown:
		m.moveSelection(m.rowStride())
	case keyLeft, keyVimLeft:
		if m.snapshot.View == company.ViewGrid {
			m.moveSelection(-1)
		}
	case keyRight, keyVimRight:
		if m.snapshot.View == company.ViewGrid {
			m.moveSelection(1)
		}
	}
	return m, nil
}

// rowStride is how far up/down moves the selection in the current view.
func (m *DirectoryModel) rowStride() int {
	if m.snapshot.View == company.ViewGrid {
		return GridColumns(m.width)
	}
	return 1
}

func (m *DirectoryModel) moveSelection(delta int) {
	target := m.selected + delta
	if target < 0 || target >= len(m.snapshot.Items) {
		return
	}
	m.selected = target
}

func (m *DirectoryModel) openPicker(kind pickerKind) {
	current := m.snapshot.Criteria.Industry
	if kind == pickLocation {
		current = m.snapshot.Criteria.Location
	}
	m.picker = newPicker(kind, m.snapshot.Options, current, m.width, m.height)
	m.state = ViewStatePicker
}

func (m *DirectoryModel) openDetail() (tea.Model, tea.Cmd) {
	if m.selected < 0 || m.selected >= len(m.snapshot.Items) {
		return m, nil
	}
	id := m.snapshot.Items[m.selected].ID
	m.detail = detail.New(m.ctx, id, m.session.Lookup)
	m.state = ViewStateDetail
	return m, tea.Batch(m.loading.Init(), m.detail.Load())
}

func (m *DirectoryModel) handlePickerUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyCtrlC:
		return m.quit()
	case keyEsc, keyQuit:
		m.closePicker()
		return m, nil
	case keyEnter:
		if choice, found := m.picker.choice(); found {
			if m.picker.kind == pickLocation {
				m.session.SetLocation(choice)
			} else {
				m.session.SetIndustry(choice)
			}
			m.selected = 0
			m.sync()
		}
		m.closePicker()
		return m, nil
	}

	_, cmd := m.picker.list.Update(msg)
	return m, cmd
}

func (m *DirectoryModel) closePicker() {
	m.picker = nil
	m.state = ViewStateList
}

func (m *DirectoryModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			return m.quit()
		case keyEsc, "backspace":
			m.state = ViewStateList
			return m, nil
		case keyR:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			if cmd != nil {
				return m, tea.Batch(m.loading.Init(), cmd)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *DirectoryModel) handleErrorUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			return m.quit()
		case keyR:
			ticket, ok := m.session.Retry()
			if !ok {
				return m, nil
			}
			logging.FromContext(m.ctx).Info().Ctx(m.ctx).Str("component", "tui").Msg("retrying directory load")
			m.state = ViewStateLoading
			m.selected = 0
			m.sync()
			return m, tea.Batch(m.loading.Init(), m.fetchCmd(ticket))
		}
	}
	return m, nil
}

func (m *DirectoryModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	return m, tea.Quit
}

func isQuit(msg tea.KeyMsg) bool {
	s := msg.String()
	return s == keyQuit || s == keyCtrlC
}

// State returns the current view state.
func (m *DirectoryModel) State() ViewState { return m.state }

// Snapshot returns the session snapshot the model last rendered from.
func (m *DirectoryModel) Snapshot() directory.Snapshot { return m.snapshot }

// Selected returns the index of the highlighted company on the current page.
func (m *DirectoryModel) Selected() int { return m.selected }
