package directory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/engine"
	"github.com/rshade/companydir/internal/pagination"
	"github.com/rshade/companydir/internal/provider"
)

// Phase is the lifecycle phase of a Session.
type Phase int

const (
	// PhaseLoading means a fetch is outstanding.
	PhaseLoading Phase = iota
	// PhaseReady means the collection is loaded and the pipeline is live.
	PhaseReady
	// PhaseFailed means the last fetch failed; Retry starts a new one.
	PhaseFailed
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is everything a Session knows. Records is nil unless the phase is Ready.
type State struct {
	Phase    Phase
	Records  []company.Company
	Criteria company.Criteria
	Cursor   pagination.Cursor
	View     company.ViewMode
	Err      error

	generation uint64
}

// Ticket identifies one fetch issued by Begin or Retry.
type Ticket struct {
	generation uint64
}

// Result is the outcome of Fetch, to be handed to Complete.
type Result struct {
	ticket  Ticket
	records []company.Company
	err     error
}

// Err returns the fetch error, if any.
func (r Result) Err() error { return r.err }

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets the fixed page size. Non-positive values keep the default.
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithDefaultView sets the view a freshly loaded session starts in.
func WithDefaultView(v company.ViewMode) Option {
	return func(s *Session) {
		if v == company.ViewGrid || v == company.ViewTable {
			s.defaultView = v
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is the directory orchestrator. It is safe for concurrent use.
type Session struct {
	provider    provider.Provider
	pageSize    int
	defaultView company.ViewMode
	logger      zerolog.Logger

	mu       sync.Mutex
	state    State
	filtered []company.Company
	page     pagination.Page[company.Company]
	options  company.FilterOptions
}

// NewSession returns a session in the Loading phase. No fetch is started; call Begin (or Load).
func NewSession(p provider.Provider, opts ...Option) *Session {
	s := &Session{
		provider:    p,
		pageSize:    pagination.DefaultPageSize,
		defaultView: company.DefaultView,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.freshState(0)
	return s
}

func (s *Session) freshState(generation uint64) State {
	return State{
		Phase:      PhaseLoading,
		Criteria:   company.DefaultCriteria(),
		Cursor:     pagination.NewCursor(s.pageSize),
		View:       s.defaultView,
		generation: generation,
	}
}

// Begin enters Loading and returns the ticket for the fetch to run. Any previously loaded records,
// criteria, page and view are discarded, and results of earlier tickets become stale.
func (s *Session) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginLocked()
}

func (s *Session) beginLocked() Ticket {
	s.state = s.freshState(s.state.generation + 1)
	s.filtered = nil
	s.page = pagination.Page[company.Company]{}
	s.options = company.FilterOptions{}

	s.logger.Debug().
		Str("operation", "begin").
		Uint64("generation", s.state.generation).
		Msg("loading companies")

	return Ticket{generation: s.state.generation}
}

// Fetch runs the provider fetch for t. It touches no session state and may run on any goroutine.
func (s *Session) Fetch(ctx context.Context, t Ticket) Result {
	records, err := s.provider.Fetch(ctx)
	return Result{ticket: t, records: records, err: err}
}

// Complete applies r if it belongs to the current generation and the session is still Loading.
// It reports whether the result was applied.
func (s *Session) Complete(r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ticket.generation != s.state.generation || s.state.Phase != PhaseLoading {
		s.logger.Debug().
			Str("operation", "complete").
			Uint64("generation", r.ticket.generation).
			Uint64("current_generation", s.state.generation).
			Str("phase", s.state.Phase.String()).
			Msg("discarding stale fetch result")
		return false
	}

	if r.err != nil {
		err := r.err
		if !errors.Is(err, provider.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", provider.ErrUnavailable, err)
		}
		s.state.Phase = PhaseFailed
		s.state.Err = err
		s.state.Records = nil

		s.logger.Warn().
			Str("operation", "complete").
			Err(err).
			Msg("failed to load companies")
		return true
	}

	s.state.Phase = PhaseReady
	s.state.Err = nil
	s.state.Records = slices.Clone(r.records)
	if s.state.Records == nil {
		s.state.Records = []company.Company{}
	}
	s.options = company.OptionsFrom(s.state.Records)
	s.recomputeLocked()

	s.logger.Info().
		Str("operation", "complete").
		Int("count", len(s.state.Records)).
		Msg("companies loaded")
	return true
}

// Load runs Begin, Fetch and Complete in sequence and returns the failure, if any.
func (s *Session) Load(ctx context.Context) error {
	t := s.Begin()
	s.Complete(s.Fetch(ctx, t))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == PhaseFailed {
		return s.state.Err
	}
	return nil
}

// Retry restarts loading from the Failed phase. Outside Failed it does nothing and reports false.
func (s *Session) Retry() (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseFailed {
		return Ticket{}, false
	}
	return s.beginLocked(), true
}

// Lookup returns a single record from the provider.
func (s *Session) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return s.provider.Lookup(ctx, id)
}

// Close releases the provider's resources. The session must not fetch afterwards.
func (s *Session) Close() error {
	return provider.Close(s.provider)
}

// recomputeLocked runs the filter/sort engine and paginator over the current state.
func (s *Session) recomputeLocked() {
	s.filtered, s.page, s.state.Cursor = derive(s.state)
}

// derive is the pure pipeline from state to the visible page.
func derive(st State) ([]company.Company, pagination.Page[company.Company], pagination.Cursor) {
	filtered := engine.Apply(st.Records, st.Criteria)
	page, cursor := pagination.Window(st.Cursor, filtered)
	return filtered, page, cursor
}
