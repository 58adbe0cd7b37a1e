package provider

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rshade/companydir/internal/company"
)

// Fetch outcome label values.
const (
	resultSuccess = "success"
	resultError   = "error"
)

// Prometheus metrics for provider fetches.
//
//   - companydir_provider_fetch_total{source, result} (Counter)
//   - companydir_provider_fetch_duration_seconds{source} (Histogram)
var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "companydir_provider_fetch_total",
		Help: "Total company collection fetches by source and result",
	}, []string{"source", "result"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "companydir_provider_fetch_duration_seconds",
		Help:    "Company collection fetch duration in seconds by source",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"source"})
)

// instrumented records metrics around every fetch of the wrapped provider.
type instrumented struct {
	next   Provider
	source string
}

// Instrument wraps p so each Fetch is counted and timed under the given source label.
func Instrument(p Provider, source string) Provider {
	return &instrumented{next: p, source: source}
}

func (i *instrumented) Fetch(ctx context.Context) ([]company.Company, error) {
	start := time.Now()
	records, err := i.next.Fetch(ctx)
	fetchDuration.WithLabelValues(i.source).Observe(time.Since(start).Seconds())

	result := resultSuccess
	if err != nil {
		result = resultError
	}
	fetchTotal.WithLabelValues(i.source, result).Inc()
	return records, err
}

func (i *instrumented) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return i.next.Lookup(ctx, id)
}

func (i *instrumented) Close() error { return Close(i.next) }
