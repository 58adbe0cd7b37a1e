package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/provider"
	"github.com/rshade/companydir/internal/tui"
)

// ErrCompanyNotFound is returned by show when no record has the requested id.
var ErrCompanyNotFound = errors.New("not found")

// NewShowCmd creates the show command, which prints a single company.
func NewShowCmd() *cobra.Command {
	var (
		output string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one company",
		Example: `  companydir show 3
  companydir show 3 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			p, err := provider.New(ctx, configFromContext(ctx).Source)
			if err != nil {
				return fmt.Errorf("configuring record source: %w", err)
			}
			defer func() {
				if closeErr := provider.Close(p); closeErr != nil {
					logger.Warn().Ctx(ctx).Err(closeErr).Msg("failed to close record source")
				}
			}()

			id := args[0]
			c, found, err := p.Lookup(ctx, id)
			if err != nil {
				return fmt.Errorf("looking up company %s: %w", id, err)
			}
			if !found {
				return fmt.Errorf("company %s %w", id, ErrCompanyNotFound)
			}

			w := cmd.OutOrStdout()
			switch {
			case format != outputText:
				return writeStructured(w, format, c)
			case detectMode(plain) == tui.OutputModePlain:
				return writeCompanyDetail(w, c)
			default:
				_, err = fmt.Fprintln(w, tui.RenderCompanyDetail(c, tui.TerminalWidth()))
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputText), "output format: text, json or yaml")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable styling for text output")

	return cmd
}
