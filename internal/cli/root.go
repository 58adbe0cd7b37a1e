package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/cache"
	"github.com/rshade/companydir/internal/config"
	"github.com/rshade/companydir/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// contextWithConfig stores the effective configuration for subcommands.
func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the configuration loaded by the root command, or the defaults.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.New()
}

// sourceFlags are the persistent flags that override the configured record source.
type sourceFlags struct {
	kind     string
	path     string
	url      string
	cacheTTL string
}

// NewRootCmd creates the root Cobra command for the companydir CLI.
// It wires up configuration, logging and tracing, and registers the subcommands.
// Running the root command without a subcommand starts the browser.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		projectDir string
		source     sourceFlags
	)

	cmd := &cobra.Command{
		Use:           "companydir",
		Short:         "Browse a company directory",
		Long:          "companydir: search, filter, sort and page through a directory of companies",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, configPath, projectDir, source)
			if err != nil {
				return err
			}

			result := setupLogging(cmd, cfg)
			logResult = &result
			cmd.SetContext(contextWithConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, browseOptions{})
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.companydir/config.yaml)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding a .companydir/config.yaml overlay")
	cmd.PersistentFlags().StringVar(&source.kind, "source", "", "record source: mock, file, http or redis")
	cmd.PersistentFlags().StringVar(&source.path, "source-path", "", "YAML or JSON file for the file source")
	cmd.PersistentFlags().StringVar(&source.url, "source-url", "", "endpoint for the http source")
	cmd.PersistentFlags().StringVar(&source.cacheTTL, "cache-ttl", "",
		"cache lifetime for remote sources, as seconds or a duration (0 disables)")

	cmd.AddCommand(
		NewBrowseCmd(), NewListCmd(), NewShowCmd(), NewOptionsCmd(),
		newConfigCmd(), newCacheCmd(), NewPublishCmd(),
	)

	return cmd
}

// loadConfig resolves the config and project overlay, then applies source flag overrides.
// Precedence: flags, then environment, then project overlay, then the global file.
func loadConfig(cmd *cobra.Command, configPath, projectDir string, source sourceFlags) (*config.Config, error) {
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	startDir, _ := os.Getwd()
	resolved := config.ResolveProjectDir(cmd.Context(), projectDir, startDir)

	cfg, err := config.LoadWithProject(cmd.Context(), configPath, resolved)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if source.kind != "" {
		cfg.Source.Kind = source.kind
	}
	if source.path != "" {
		cfg.Source.Path = source.path
	}
	if source.url != "" {
		cfg.Source.URL = source.url
	}
	if source.cacheTTL != "" {
		ttl, ttlErr := cache.ParseTTL(source.cacheTTL)
		if ttlErr != nil {
			return nil, fmt.Errorf("invalid flags: --cache-ttl: %w", ttlErr)
		}
		cfg.Source.Cache.SetTTL(ttl)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Browse the built-in sample directory
  companydir

  # Browse companies from a YAML file
  companydir browse --source file --source-path companies.yaml

  # Print the second page of technology companies as JSON
  companydir list --industry Technology --page 2 --output json

  # Sort by headcount, largest first
  companydir list --sort employees:desc

  # Show a single company
  companydir show 3

  # List the industries and locations present in the data
  companydir options

  # Cache an http source for ten minutes
  companydir list --source http --source-url https://example.com/companies.json --cache-ttl 10m

  # Initialize configuration
  companydir config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
