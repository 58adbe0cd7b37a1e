package provider

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rshade/companydir/internal/company"
)

//go:embed seed.yaml
var seedData []byte

// errSimulatedFailure is returned for fetches consumed by FailFirst.
var errSimulatedFailure = errors.New("simulated failure")

// SampleCompanies returns the built-in sample collection.
func SampleCompanies() ([]company.Company, error) {
	return decode(seedData)
}

// Mock serves a fixed collection after a simulated latency.
type Mock struct {
	records   []company.Company
	delay     time.Duration
	failFirst int

	mu    sync.Mutex
	calls int
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithDelay sets the simulated latency of every call.
func WithDelay(d time.Duration) MockOption {
	return func(m *Mock) { m.delay = d }
}

// WithFailFirst makes the first n fetches fail with ErrUnavailable.
func WithFailFirst(n int) MockOption {
	return func(m *Mock) { m.failFirst = n }
}

// WithRecords replaces the sample collection.
func WithRecords(records []company.Company) MockOption {
	return func(m *Mock) { m.records = slices.Clone(records) }
}

// NewMock builds a Mock over the sample collection.
func NewMock(opts ...MockOption) (*Mock, error) {
	records, err := SampleCompanies()
	if err != nil {
		return nil, fmt.Errorf("loading sample companies: %w", err)
	}
	m := &Mock{records: records}
	for _, opt := range opts {
		opt(m)
	}
	if validateErr := company.Validate(m.records); validateErr != nil {
		return nil, validateErr
	}
	return m, nil
}

// Fetch waits for the configured delay and returns a copy of the collection. A fetch cancelled
// during the delay is not counted.
func (m *Mock) Fetch(ctx context.Context) ([]company.Company, error) {
	if err := m.wait(ctx); err != nil {
		return nil, unavailable(err)
	}

	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()

	if call <= m.failFirst {
		return nil, unavailable(fmt.Errorf("%w (fetch %d of %d)", errSimulatedFailure, call, m.failFirst))
	}

	return slices.Clone(m.records), nil
}

// Lookup waits for the configured delay and searches the collection. It does not count towards
// FailFirst.
func (m *Mock) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	if err := m.wait(ctx); err != nil {
		return company.Company{}, false, unavailable(err)
	}
	c, ok := company.Find(m.records, id)
	return c, ok, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
