package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rshade/companydir/internal/company"
)

// maxErrorBody caps how much of a failed response body is quoted in the error.
const maxErrorBody = 256

// HTTP fetches a JSON array of companies from a URL.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP returns an HTTP source. A zero timeout means no client-side timeout.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch GETs the URL and decodes the response body.
func (h *HTTP) Fetch(ctx context.Context) ([]company.Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, unavailable(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, unavailable(fmt.Errorf("requesting %s: %w", h.url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, unavailable(fmt.Errorf("requesting %s: status %d: %s", h.url, resp.StatusCode, body))
	}

	var records []company.Company
	if decodeErr := json.NewDecoder(resp.Body).Decode(&records); decodeErr != nil {
		return nil, unavailable(fmt.Errorf("decoding response from %s: %w", h.url, decodeErr))
	}
	return validated(records)
}

// Lookup fetches the collection and searches it for id.
func (h *HTTP) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return lookup(ctx, h, id)
}
