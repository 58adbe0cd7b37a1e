package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/tui"
)

type browseOptions struct {
	plain bool
}

// NewBrowseCmd creates the browse command, which runs the interactive directory browser.
func NewBrowseCmd() *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the directory interactively",
		Long: `Opens the interactive directory browser.

When stdout is not a terminal (or --plain is set) the first page is printed instead.`,
		Example: `  # Browse the configured source
  companydir browse

  # Print the first page without the interactive UI
  companydir browse --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the first page instead of starting the browser")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts browseOptions) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	mode := detectMode(opts.plain)

	if mode != tui.OutputModeInteractive {
		session, err := loadSession(ctx, cfg, sessionSettings{})
		if err != nil {
			return err
		}
		defer closeSession(ctx, session)
		return renderSnapshot(cmd.OutOrStdout(), outputText, mode, session.Snapshot())
	}

	session, err := newSession(ctx, cfg, sessionSettings{})
	if err != nil {
		return err
	}
	defer closeSession(ctx, session)

	p := tea.NewProgram(tui.NewDirectoryModel(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
