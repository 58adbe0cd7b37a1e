package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/config"
	"github.com/rshade/companydir/internal/provider"
)

func sample() []company.Company {
	return []company.Company{
		{ID: "a", Name: "Acme", Industry: "Technology", Location: "Austin, TX", Employees: 10, Founded: 2001},
		{ID: "b", Name: "Beta Health", Industry: "Healthcare", Location: "Boston, MA", Employees: 20, Founded: 1999},
	}
}

func TestSampleCompanies(t *testing.T) {
	records, err := provider.SampleCompanies()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	require.NoError(t, company.Validate(records))

	opts := company.OptionsFrom(records)
	assert.Greater(t, len(opts.Industries), 2)
	assert.Greater(t, len(opts.Locations), 2)
}

func TestMock_Fetch(t *testing.T) {
	m, err := provider.NewMock(provider.WithDelay(0))
	require.NoError(t, err)

	first, err := m.Fetch(context.Background())
	require.NoError(t, err)
	second, err := m.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Callers own their copy.
	first[0].Name = "changed"
	third, err := m.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "changed", third[0].Name)
}

func TestMock_FailFirst(t *testing.T) {
	m, err := provider.NewMock(provider.WithDelay(0), provider.WithFailFirst(2))
	require.NoError(t, err)

	for range 2 {
		_, fetchErr := m.Fetch(context.Background())
		require.ErrorIs(t, fetchErr, provider.ErrUnavailable)
	}

	records, err := m.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestMock_Delay(t *testing.T) {
	m, err := provider.NewMock(provider.WithDelay(20 * time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = m.Fetch(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMock_ContextCanceled(t *testing.T) {
	m, err := provider.NewMock(provider.WithDelay(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Fetch(ctx)
	require.ErrorIs(t, err, provider.ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMock_CanceledFetchIsNotCounted(t *testing.T) {
	m, err := provider.NewMock(provider.WithDelay(50*time.Millisecond), provider.WithFailFirst(1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, err = m.Fetch(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The failure slot is still unused, so the next completed fetch takes it.
	_, err = m.Fetch(context.Background())
	require.ErrorIs(t, err, provider.ErrUnavailable)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)

	records, err := m.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestMock_Lookup(t *testing.T) {
	m, err := provider.NewMock(provider.WithDelay(0), provider.WithRecords(sample()))
	require.NoError(t, err)

	got, ok, err := m.Lookup(context.Background(), "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Beta Health", got.Name)

	_, ok, err = m.Lookup(context.Background(), "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMock_InvalidRecords(t *testing.T) {
	records := sample()
	records[1].ID = "a"

	_, err := provider.NewMock(provider.WithRecords(records))
	assert.ErrorIs(t, err, company.ErrDuplicateID)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFile_Fetch(t *testing.T) {
	data, err := json.Marshal(sample())
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		want    int
		wantErr error
	}{
		{
			name: "yaml",
			path: writeFile(t, "companies.yaml", "- id: x\n  name: X Corp\n  employees: 5\n"),
			want: 1,
		},
		{
			name: "json",
			path: writeFile(t, "companies.json", string(data)),
			want: 2,
		},
		{
			name: "empty file",
			path: writeFile(t, "empty.yaml", ""),
			want: 0,
		},
		{
			name:    "missing file",
			path:    filepath.Join(t.TempDir(), "missing.yaml"),
			wantErr: os.ErrNotExist,
		},
		{
			name:    "negative employees",
			path:    writeFile(t, "bad.yaml", "- id: x\n  employees: -1\n"),
			wantErr: company.ErrNegativeEmployees,
		},
		{
			name:    "missing id",
			path:    writeFile(t, "noid.yaml", "- name: Nameless\n"),
			wantErr: company.ErrMissingID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, fetchErr := provider.NewFile(tt.path).Fetch(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, fetchErr, provider.ErrUnavailable)
				assert.ErrorIs(t, fetchErr, tt.wantErr)
				assert.Nil(t, records)
				return
			}
			require.NoError(t, fetchErr)
			assert.Len(t, records, tt.want)
			assert.NotNil(t, records)
		})
	}
}

func TestHTTP_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/companies":
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(sample())
		case "/broken":
			_, _ = w.Write([]byte("{not json"))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	t.Run("success", func(t *testing.T) {
		records, err := provider.NewHTTP(srv.URL+"/companies", time.Second).Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sample(), records)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := provider.NewHTTP(srv.URL+"/fail", time.Second).Fetch(context.Background())
		require.ErrorIs(t, err, provider.ErrUnavailable)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := provider.NewHTTP(srv.URL+"/broken", time.Second).Fetch(context.Background())
		require.ErrorIs(t, err, provider.ErrUnavailable)
	})

	t.Run("lookup", func(t *testing.T) {
		got, ok, err := provider.NewHTTP(srv.URL+"/companies", time.Second).Lookup(context.Background(), "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Acme", got.Name)
	})
}

func TestHTTP_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := provider.NewHTTP(srv.URL, 20*time.Millisecond).Fetch(context.Background())
	require.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestRedis_Unreachable(t *testing.T) {
	r := provider.NewRedis(provider.RedisOptions{
		Addr:    "127.0.0.1:1",
		Key:     "companies",
		Timeout: 200 * time.Millisecond,
	})
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.Fetch(ctx)
	require.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestFetchFunc(t *testing.T) {
	var p provider.Provider = provider.FetchFunc(func(context.Context) ([]company.Company, error) {
		return sample(), nil
	})

	got, ok, err := p.Lookup(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Acme", got.Name)
}

func TestNew(t *testing.T) {
	path := writeFile(t, "companies.yaml", "- id: x\n  name: X Corp\n")

	tests := []struct {
		name    string
		cfg     config.SourceConfig
		want    int
		wantErr error
	}{
		{
			name: "mock",
			cfg:  config.SourceConfig{Kind: config.SourceMock},
			want: -1,
		},
		{
			name: "default kind is mock",
			cfg:  config.SourceConfig{},
			want: -1,
		},
		{
			name: "file",
			cfg:  config.SourceConfig{Kind: config.SourceFile, Path: path},
			want: 1,
		},
		{
			name:    "unknown",
			cfg:     config.SourceConfig{Kind: "ftp"},
			wantErr: config.ErrUnknownSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := provider.New(context.Background(), tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			records, err := p.Fetch(context.Background())
			require.NoError(t, err)
			if tt.want >= 0 {
				assert.Len(t, records, tt.want)
			} else {
				assert.NotEmpty(t, records)
			}
		})
	}
}
