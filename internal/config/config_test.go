package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/companydir/internal/cache"
	"github.com/rshade/companydir/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNew_Defaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, config.SourceMock, cfg.Source.Kind)
	assert.Equal(t, config.DefaultMockDelay, cfg.Source.Mock.Delay)
	assert.Equal(t, config.DefaultPageSize, cfg.Display.PageSize)
	assert.Equal(t, "grid", cfg.Display.DefaultView)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.SourceMock, cfg.Source.Kind)
	assert.Equal(t, 9, cfg.Display.PageSize)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `version: 1.2.0
source:
  kind: http
  url: http://example.invalid/companies
  timeout: 5s
display:
  page_size: 6
  default_view: table
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, "http://example.invalid/companies", cfg.Source.URL)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 6, cfg.Display.PageSize)
	assert.Equal(t, "table", cfg.Display.DefaultView)
	// Untouched sections keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unsupported major version",
			content: "version: 2.0.0\n",
			wantErr: config.ErrUnsupportedVersion,
		},
		{
			name:    "garbage version",
			content: "version: banana\n",
			wantErr: config.ErrUnsupportedVersion,
		},
		{
			name:    "unknown source",
			content: "source:\n  kind: ftp\n",
			wantErr: config.ErrUnknownSource,
		},
		{
			name:    "file source without path",
			content: "source:\n  kind: file\n",
			wantErr: config.ErrMissingSourcePath,
		},
		{
			name:    "http source without url",
			content: "source:\n  kind: http\n",
			wantErr: config.ErrMissingSourceURL,
		},
		{
			name:    "zero page size",
			content: "display:\n  page_size: 0\n",
			wantErr: config.ErrInvalidPageSize,
		},
		{
			name:    "enabled cache with too long a ttl",
			content: "source:\n  cache:\n    enabled: true\n    ttl: 400h\n",
			wantErr: cache.ErrInvalidTTL,
		},
		{
			name:    "unknown view",
			content: "display:\n  default_view: cards\n",
			wantErr: config.ErrInvalidView,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.content)

			_, err := config.Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "source: [unclosed\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "source:\n  kind: mock\n")

	t.Setenv("COMPANYDIR_SOURCE", "file")
	t.Setenv("COMPANYDIR_SOURCE_PATH", "/data/companies.yaml")
	t.Setenv("COMPANYDIR_LOG_LEVEL", "debug")
	t.Setenv("COMPANYDIR_PAGE_SIZE", "12")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.SourceFile, cfg.Source.Kind)
	assert.Equal(t, "/data/companies.yaml", cfg.Source.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 12, cfg.Display.PageSize)
}

func TestApplyEnv_BadPageSize(t *testing.T) {
	cfg := config.New()
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		if key == "COMPANYDIR_PAGE_SIZE" {
			return "many", true
		}
		return "", false
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMPANYDIR_PAGE_SIZE")
}

func TestApplyEnv_CacheTTL(t *testing.T) {
	env := func(v string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			if key == "COMPANYDIR_CACHE_TTL" {
				return v, true
			}
			return "", false
		}
	}

	cfg := config.New()
	assert.False(t, cfg.Source.Cache.Enabled)
	assert.Equal(t, cache.DefaultTTL, cfg.Source.Cache.TTL)

	require.NoError(t, cfg.ApplyEnv(env("90")))
	assert.True(t, cfg.Source.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Source.Cache.TTL)
	require.NoError(t, cfg.Validate())

	require.NoError(t, cfg.ApplyEnv(env("0")))
	assert.False(t, cfg.Source.Cache.Enabled)

	err := cfg.ApplyEnv(env("forever"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMPANYDIR_CACHE_TTL")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.Source.Kind = config.SourceRedis
	cfg.Source.Redis.Addr = "cache:6379"
	cfg.Source.Mock.Delay = 250 * time.Millisecond
	cfg.Source.Cache.SetTTL(2 * time.Minute)
	cfg.Display.PageSize = 3
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.SourceRedis, loaded.Source.Kind)
	assert.Equal(t, "cache:6379", loaded.Source.Redis.Addr)
	assert.Equal(t, 250*time.Millisecond, loaded.Source.Mock.Delay)
	assert.Equal(t, 3, loaded.Display.PageSize)
	assert.True(t, loaded.Source.Cache.Enabled)
	assert.Equal(t, 2*time.Minute, loaded.Source.Cache.TTL)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("COMPANYDIR_CONFIG", "/etc/companydir.yaml")
	assert.Equal(t, "/etc/companydir.yaml", config.DefaultPath())
}

func TestShallowMergeYAML(t *testing.T) {
	overlay := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, overlay, `version: 9.9.9
display:
  default_view: table
unknown_key: ignored
`)

	cfg := config.New()
	cfg.Display.PageSize = 20
	cfg.Source.Kind = config.SourceFile
	cfg.Source.Path = "keep.yaml"

	require.NoError(t, config.ShallowMergeYAML(cfg, overlay))

	assert.Equal(t, "table", cfg.Display.DefaultView)
	// The display section is replaced wholesale, starting from defaults.
	assert.Equal(t, config.DefaultPageSize, cfg.Display.PageSize)
	// Sections absent from the overlay are untouched.
	assert.Equal(t, "keep.yaml", cfg.Source.Path)
	// version is not overlayable.
	assert.Equal(t, config.CurrentVersion, cfg.Version)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x"))
	require.Error(t, config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestResolveProjectDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COMPANYDIR_PROJECT_DIR", "")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".companydir", "config.yaml"), "display:\n  page_size: 4\n")
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	ctx := context.Background()

	t.Run("walks up", func(t *testing.T) {
		assert.Equal(t, filepath.Join(root, ".companydir"), config.ResolveProjectDir(ctx, "", deep))
	})

	t.Run("flag wins", func(t *testing.T) {
		other := t.TempDir()
		assert.Equal(t, filepath.Join(other, ".companydir"), config.ResolveProjectDir(ctx, other, deep))
	})

	t.Run("flag already pointing at dir", func(t *testing.T) {
		dir := filepath.Join(root, ".companydir")
		assert.Equal(t, dir, config.ResolveProjectDir(ctx, dir, ""))
	})

	t.Run("none found", func(t *testing.T) {
		assert.Empty(t, config.ResolveProjectDir(ctx, "", t.TempDir()))
	})
}

func TestLoadWithProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	global := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, global, "display:\n  page_size: 6\nlogging:\n  level: warn\n")

	projectDir := filepath.Join(t.TempDir(), ".companydir")
	writeFile(t, filepath.Join(projectDir, "config.yaml"), "display:\n  page_size: 4\n  default_view: table\n")

	cfg, err := config.LoadWithProject(context.Background(), global, projectDir)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Display.PageSize)
	assert.Equal(t, "table", cfg.Display.DefaultView)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "console"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", got.Output)
	assert.Equal(t, "debug", got.Level)

	lc.File = filepath.Join(t.TempDir(), "logs", "app.log")
	got = lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, lc.File, got.File)

	require.NoError(t, lc.EnsureLogDir())
	assert.DirExists(t, filepath.Dir(lc.File))
}
