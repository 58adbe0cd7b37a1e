package detail

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/companydir/internal/company"
)

// ErrNotFound is reported when the looked-up id no longer exists.
var ErrNotFound = errors.New("company not found")

// Status is the load status of a detail view.
type Status int

const (
	// StatusLoading means the lookup is in flight.
	StatusLoading Status = iota
	// StatusLoaded means Company holds the record.
	StatusLoaded
	// StatusError means the lookup failed; Err holds the cause.
	StatusError
)

// LookupFunc fetches a single company.
type LookupFunc func(ctx context.Context, id string) (company.Company, bool, error)

// LoadedMsg carries a lookup result back into the program.
type LoadedMsg struct {
	ID      string
	Company company.Company
	Err     error
	attempt int
}

// Model is the lazily loaded detail of one company.
type Model struct {
	ctx     context.Context
	lookup  LookupFunc
	id      string
	status  Status
	company company.Company
	err     error
	attempt int
}

// New returns a Model in StatusLoading for id. Call Load to start the lookup.
func New(ctx context.Context, id string, lookup LookupFunc) Model {
	return Model{ctx: ctx, lookup: lookup, id: id, status: StatusLoading}
}

// Load returns the command performing the lookup.
func (m Model) Load() tea.Cmd {
	ctx, lookup, id, attempt := m.ctx, m.lookup, m.id, m.attempt
	return func() tea.Msg {
		c, found, err := lookup(ctx, id)
		if err == nil && !found {
			err = fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return LoadedMsg{ID: id, Company: c, Err: err, attempt: attempt}
	}
}

// Update applies lookup results for this id and handles the retry key.
// Results from an earlier attempt are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.ID != m.id || msg.attempt != m.attempt {
			return m, nil
		}
		if msg.Err != nil {
			m.status = StatusError
			m.err = msg.Err
			return m, nil
		}
		m.status = StatusLoaded
		m.company = msg.Company
		m.err = nil
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "r" && m.status == StatusError {
			m.attempt++
			m.status = StatusLoading
			m.err = nil
			return m, m.Load()
		}
	}
	return m, nil
}

// ID returns the company id being shown.
func (m Model) ID() string { return m.id }

// Status returns the load status.
func (m Model) Status() Status { return m.status }

// Company returns the loaded record; valid only in StatusLoaded.
func (m Model) Company() company.Company { return m.company }

// Err returns the lookup failure; valid only in StatusError.
func (m Model) Err() error { return m.err }
