package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/provider"
)

// NewPublishCmd creates the publish command, which seeds the Redis source with a collection.
func NewPublishCmd() *cobra.Command {
	var (
		file string
		addr string
		key  string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Store a company collection in Redis for the redis source",
		Long: `Validates a company collection and stores it under the configured Redis key,
replacing what was there. Without --file the built-in sample collection is published.`,
		Example: `  # Publish the sample collection to the configured Redis
  companydir publish

  # Publish a file to a specific server and key
  companydir publish --file companies.yaml --redis-addr redis:6379 --key directory:prod`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			records, err := publishRecords(cmd, file)
			if err != nil {
				return err
			}

			opts := provider.RedisOptions{
				Addr:     cfg.Source.Redis.Addr,
				Password: cfg.Source.Redis.Password,
				DB:       cfg.Source.Redis.DB,
				Key:      cfg.Source.Redis.Key,
				Timeout:  cfg.Source.Timeout,
			}
			if addr != "" {
				opts.Addr = addr
			}
			if key != "" {
				opts.Key = key
			}

			store := provider.NewRedis(opts)
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					logger.Warn().Ctx(ctx).Err(closeErr).Msg("closing redis client")
				}
			}()

			if err = store.Publish(ctx, records); err != nil {
				return fmt.Errorf("publishing companies: %w", err)
			}

			logger.Info().Ctx(ctx).Str("addr", opts.Addr).Str("key", opts.Key).Int("count", len(records)).
				Msg("companies published")
			cmd.Printf("Published %d companies to %s (key %s)\n", len(records), opts.Addr, opts.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON collection to publish (default: sample data)")
	cmd.Flags().StringVar(&addr, "redis-addr", "", "Redis address (default from config)")
	cmd.Flags().StringVar(&key, "key", "", "Redis key (default from config)")

	return cmd
}

// publishRecords reads the collection to publish from file, or returns the sample collection.
func publishRecords(cmd *cobra.Command, file string) ([]company.Company, error) {
	if file == "" {
		return provider.SampleCompanies()
	}
	records, err := provider.NewFile(file).Fetch(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return records, nil
}
