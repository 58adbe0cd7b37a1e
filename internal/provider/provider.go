// Package provider supplies the company collection from a configurable source.
//
// Every source satisfies Provider. A fetch is all-or-nothing: it either returns the whole validated
// collection or an error wrapping ErrUnavailable. Sources are decorated by Instrument (Prometheus
// metrics) and Share (collapsing concurrent fetches) before use.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rshade/companydir/internal/company"
)

// ErrUnavailable is the single failure kind a fetch reports.
var ErrUnavailable = errors.New("company data unavailable")

// Provider supplies company records.
type Provider interface {
	// Fetch returns the complete collection. Repeated calls return the same collection.
	Fetch(ctx context.Context) ([]company.Company, error)

	// Lookup returns the record with the given ID. A missing ID is reported by the boolean,
	// not by an error.
	Lookup(ctx context.Context, id string) (company.Company, bool, error)
}

// Close releases the resources held by p, such as a Redis connection pool. Decorators forward
// Close to the provider they wrap; sources without resources are a no-op.
func Close(p Provider) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// FetchFunc adapts a plain function to Provider. Lookup scans the fetched collection.
type FetchFunc func(ctx context.Context) ([]company.Company, error)

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context) ([]company.Company, error) {
	return f(ctx)
}

// Lookup fetches the collection and searches it for id.
func (f FetchFunc) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return lookup(ctx, f, id)
}

// lookup implements Lookup on top of a full fetch.
func lookup(ctx context.Context, p interface {
	Fetch(ctx context.Context) ([]company.Company, error)
}, id string,
) (company.Company, bool, error) {
	records, err := p.Fetch(ctx)
	if err != nil {
		return company.Company{}, false, err
	}
	c, ok := company.Find(records, id)
	return c, ok, nil
}

// unavailable wraps cause in ErrUnavailable unless it already is one.
func unavailable(cause error) error {
	if cause == nil || errors.Is(cause, ErrUnavailable) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, cause)
}

// decode parses a YAML (or JSON, which YAML accepts) array of companies and validates it.
func decode(data []byte) ([]company.Company, error) {
	var records []company.Company
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, unavailable(fmt.Errorf("decoding companies: %w", err))
	}
	return validated(records)
}

// validated enforces the collection invariants and normalises a nil collection to empty.
func validated(records []company.Company) ([]company.Company, error) {
	if err := company.Validate(records); err != nil {
		return nil, unavailable(err)
	}
	if records == nil {
		records = []company.Company{}
	}
	return records, nil
}
