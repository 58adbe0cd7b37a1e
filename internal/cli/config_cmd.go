package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project it writes ./.companydir/config.yaml, an overlay picked up from this directory
// and its subdirectories. Otherwise it writes the global config file.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Use --project to create a project-local overlay at ./.companydir/config.yaml. Its
source, display and logging sections replace the global ones when companydir runs
inside the project.`,
		Example: `  # Create global configuration
  companydir config init

  # Create a project-local overlay
  companydir config init --project

  # Create configuration, overwriting existing
  companydir config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultPath()
			}
			if project {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				path = filepath.Join(wd, ".companydir", "config.yaml")
			}
			return initConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create a project-local overlay in the current directory")

	return cmd
}

// initConfig writes the default configuration to path.
func initConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.New().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}

// NewConfigShowCmd creates the config show command, which prints the effective configuration
// after the project overlay, environment and flags have been applied.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			if format == outputText {
				format = outputYAML
			}
			return writeStructured(cmd.OutOrStdout(), format, configFromContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputYAML), "output format: yaml or json")

	return cmd
}
