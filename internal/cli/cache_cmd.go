package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/cache"
	"github.com/rshade/companydir/internal/config"
)

// cacheStatus is the structured form of `cache status`.
type cacheStatus struct {
	Enabled   bool   `json:"enabled"    yaml:"enabled"`
	Directory string `json:"directory"  yaml:"directory"`
	TTL       string `json:"ttl"        yaml:"ttl"`
	Entries   int    `json:"entries"    yaml:"entries"`
	Expired   int    `json:"expired"    yaml:"expired"`
	SizeBytes int64  `json:"size_bytes" yaml:"size_bytes"`
}

// newCacheCmd creates the cache command group for the remote source cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Inspect and clear the remote source cache"}
	cmd.AddCommand(newCacheStatusCmd(), newCacheClearCmd(), newCachePruneCmd())
	return cmd
}

// openStore opens the configured cache directory. The TTL only matters for new entries, so a
// disabled cache falls back to the default.
func openStore(cfg *config.Config) (*cache.FileStore, error) {
	ttl := cfg.Source.Cache.TTL
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	store, err := cache.NewFileStore(cfg.Source.Cache.Dir, ttl)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

func newCacheStatusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cache directory, TTL and entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			cfg := configFromContext(cmd.Context())
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return fmt.Errorf("reading cache: %w", err)
			}

			status := cacheStatus{
				Enabled:   cfg.Source.Cache.Enabled,
				Directory: stats.Directory,
				TTL:       cache.FormatDuration(stats.TTL),
				Entries:   stats.Entries,
				Expired:   stats.Expired,
				SizeBytes: stats.SizeBytes,
			}
			if format != outputText {
				return writeStructured(cmd.OutOrStdout(), format, status)
			}
			return writeCacheStatus(cmd.OutOrStdout(), status)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputText), "output format: text, json or yaml")

	return cmd
}

func writeCacheStatus(w io.Writer, s cacheStatus) error {
	state := "disabled"
	if s.Enabled {
		state = "enabled"
	}
	_, err := fmt.Fprintf(w, "Cache:     %s\nDirectory: %s\nTTL:       %s\nEntries:   %d (%d expired)\nSize:      %d bytes\n",
		state, s.Directory, s.TTL, s.Entries, s.Expired, s.SizeBytes)
	return err
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			removed, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			logger.Info().Ctx(cmd.Context()).Int("removed", removed).Msg("cache cleared")
			cmd.Printf("Removed %d cache entries\n", removed)
			return nil
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			cmd.Printf("Removed %d expired cache entries\n", removed)
			return nil
		},
	}
}
