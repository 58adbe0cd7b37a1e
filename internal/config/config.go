package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/companydir/internal/cache"
)

// Record source kinds.
const (
	SourceMock  = "mock"
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceRedis = "redis"
)

// Defaults applied by New.
const (
	CurrentVersion      = "1.0.0"
	supportedVersions   = "^1"
	DefaultPageSize     = 9
	DefaultView         = "grid"
	DefaultMockDelay    = time.Second
	DefaultHTTPTimeout  = 10 * time.Second
	DefaultRedisKey     = "companydir:companies"
	DefaultRedisAddr    = "localhost:6379"
	configDirName       = ".companydir"
	configFileName      = "config.yaml"
	logFileName         = "companydir.log"
	maxPageSize         = 1000
	configFilePerm      = 0o600
	configDirPerm       = 0o750
	envConfigPath       = "COMPANYDIR_CONFIG"
	envSource           = "COMPANYDIR_SOURCE"
	envSourcePath       = "COMPANYDIR_SOURCE_PATH"
	envSourceURL        = "COMPANYDIR_SOURCE_URL"
	envRedisAddr        = "COMPANYDIR_REDIS_ADDR"
	envLogLevel         = "COMPANYDIR_LOG_LEVEL"
	envLogFormat        = "COMPANYDIR_LOG_FORMAT"
	envPageSize         = "COMPANYDIR_PAGE_SIZE"
	envCacheTTL         = "COMPANYDIR_CACHE_TTL"
	cacheDirName        = "cache"
	outputTypeFile      = "file"
	outputTypeStderr    = "stderr"
	defaultLoggingLevel = "info"
)

// Validation errors.
var (
	ErrUnknownSource      = errors.New("unknown source kind")
	ErrMissingSourcePath  = errors.New("source.path is required for the file source")
	ErrMissingSourceURL   = errors.New("source.url is required for the http source")
	ErrMissingRedisAddr   = errors.New("source.redis.addr is required for the redis source")
	ErrInvalidPageSize    = errors.New("display.page_size must be between 1 and 1000")
	ErrInvalidView        = errors.New("display.default_view must be grid or table")
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrNegativeDuration   = errors.New("durations cannot be negative")
)

// Config is the companydir configuration.
//
// YAML Location: ~/.companydir/config.yaml
//
// Example:
//
//	version: 1.0.0
//	source:
//	  kind: file
//	  path: ./companies.yaml
//	display:
//	  page_size: 9
//	  default_view: table
//	logging:
//	  level: debug
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Source  SourceConfig  `yaml:"source"  json:"source"`
	Display DisplayConfig `yaml:"display" json:"display"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SourceConfig selects and configures the record provider.
type SourceConfig struct {
	// Kind is one of mock, file, http, redis.
	Kind string `yaml:"kind" json:"kind"`

	// Path is the YAML or JSON file read by the file source.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// URL is fetched by the http source; it must return a JSON array of companies.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// Timeout bounds a single http or redis fetch.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	Redis RedisConfig `yaml:"redis" json:"redis"`
	Mock  MockConfig  `yaml:"mock"  json:"mock"`

	// Cache keeps the last successful http or redis fetch on disk.
	Cache CacheConfig `yaml:"cache" json:"cache"`
}

// CacheConfig configures the on-disk cache for remote sources.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"       json:"enabled"`
	TTL     time.Duration `yaml:"ttl"           json:"ttl"`
	Dir     string        `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// RedisConfig configures the redis source.
type RedisConfig struct {
	Addr     string `yaml:"addr"               json:"addr"`
	Password string `yaml:"password,omitempty" json:"-"`
	DB       int    `yaml:"db"                 json:"db"`
	Key      string `yaml:"key"                json:"key"`
}

// MockConfig configures the built-in sample source.
type MockConfig struct {
	// Delay simulates fetch latency.
	Delay time.Duration `yaml:"delay" json:"delay"`

	// FailFirst makes the first N fetches fail.
	FailFirst int `yaml:"fail_first,omitempty" json:"fail_first,omitempty"`
}

// DisplayConfig configures presentation.
type DisplayConfig struct {
	PageSize    int    `yaml:"page_size"    json:"page_size"`
	DefaultView string `yaml:"default_view" json:"default_view"`
}

// LoggingConfig configures logging. An empty File logs to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Source: SourceConfig{
			Kind:    SourceMock,
			Timeout: DefaultHTTPTimeout,
			Redis:   RedisConfig{Addr: DefaultRedisAddr, Key: DefaultRedisKey},
			Mock:    MockConfig{Delay: DefaultMockDelay},
			Cache:   CacheConfig{TTL: cache.DefaultTTL, Dir: filepath.Join(Dir(), cacheDirName)},
		},
		Display: DisplayConfig{PageSize: DefaultPageSize, DefaultView: DefaultView},
		Logging: LoggingConfig{Level: defaultLoggingLevel, Format: "json", File: DefaultLogFile()},
	}
}

// Dir returns the companydir home directory (~/.companydir), or a relative fallback when the
// home directory cannot be determined.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// DefaultPath returns the config path, honouring COMPANYDIR_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), configFileName)
}

// DefaultLogFile returns the default log file path.
func DefaultLogFile() string {
	return filepath.Join(Dir(), "logs", logFileName)
}

// Load reads the config at path on top of the defaults, applies environment overrides and validates
// the result. A missing file is not an error; the defaults are used.
func Load(path string) (*Config, error) {
	cfg := New()
	if err := readInto(cfg, path); err != nil {
		return nil, err
	}
	return finish(cfg, path)
}

// readInto unmarshals the YAML file at path onto cfg. Missing files are ignored.
func readInto(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return fmt.Errorf("parsing config %s: %w", path, unmarshalErr)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

func finish(cfg *Config, path string) (*Config, error) {
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies COMPANYDIR_* overrides. Environment variables win over the config file;
// CLI flags win over both.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(envSource); ok && v != "" {
		c.Source.Kind = v
	}
	if v, ok := lookupEnv(envSourcePath); ok && v != "" {
		c.Source.Path = v
	}
	if v, ok := lookupEnv(envSourceURL); ok && v != "" {
		c.Source.URL = v
	}
	if v, ok := lookupEnv(envRedisAddr); ok && v != "" {
		c.Source.Redis.Addr = v
	}
	if v, ok := lookupEnv(envLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(envLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(envCacheTTL); ok && v != "" {
		ttl, err := cache.ParseTTL(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envCacheTTL, err)
		}
		c.Source.Cache.SetTTL(ttl)
	}
	if v, ok := lookupEnv(envPageSize); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envPageSize, err)
		}
		c.Display.PageSize = size
	}
	return nil
}

// SetTTL enables the cache with ttl, or disables it when ttl is zero.
func (cc *CacheConfig) SetTTL(ttl time.Duration) {
	cc.Enabled = ttl > 0
	if ttl > 0 {
		cc.TTL = ttl
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}

	switch c.Source.Kind {
	case SourceMock:
		if c.Source.Mock.Delay < 0 {
			return fmt.Errorf("source.mock.delay: %w", ErrNegativeDuration)
		}
	case SourceFile:
		if c.Source.Path == "" {
			return ErrMissingSourcePath
		}
	case SourceHTTP:
		if c.Source.URL == "" {
			return ErrMissingSourceURL
		}
	case SourceRedis:
		if c.Source.Redis.Addr == "" {
			return ErrMissingRedisAddr
		}
	default:
		return fmt.Errorf("%w: %q (must be mock, file, http or redis)", ErrUnknownSource, c.Source.Kind)
	}

	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout: %w", ErrNegativeDuration)
	}

	if c.Source.Cache.Enabled {
		if err := cache.ValidateTTL(c.Source.Cache.TTL); err != nil {
			return fmt.Errorf("source.cache.ttl: %w", err)
		}
	}

	if c.Display.PageSize < 1 || c.Display.PageSize > maxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Display.PageSize)
	}

	if c.Display.DefaultView != "grid" && c.Display.DefaultView != "table" {
		return fmt.Errorf("%w: got %q", ErrInvalidView, c.Display.DefaultView)
	}

	return nil
}

// validateVersion accepts an empty version (treated as current) or any 1.x version.
func validateVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, version, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedVersion, version, supportedVersions)
	}
	return nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if writeErr := os.WriteFile(path, data, configFilePerm); writeErr != nil {
		return fmt.Errorf("writing config %s: %w", path, writeErr)
	}
	return nil
}
