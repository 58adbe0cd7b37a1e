package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/engine"
)

// sortKeyInfo describes one sort key for the options listing.
type sortKeyInfo struct {
	Key   company.SortKey `json:"key"   yaml:"key"`
	Label string          `json:"label" yaml:"label"`
}

// optionsListing holds the filter values present in the data and the supported sort keys.
type optionsListing struct {
	Industries []string      `json:"industries" yaml:"industries"`
	Locations  []string      `json:"locations"  yaml:"locations"`
	SortKeys   []sortKeyInfo `json:"sort_keys"  yaml:"sort_keys"`
}

// NewOptionsCmd creates the options command, which lists the values accepted by the list filters.
func NewOptionsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List industries, locations and sort keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			session, err := loadSession(ctx, configFromContext(ctx), sessionSettings{})
			if err != nil {
				return err
			}
			defer closeSession(ctx, session)

			opts := session.Snapshot().Options
			listing := optionsListing{Industries: opts.Industries, Locations: opts.Locations}
			for _, k := range engine.NewSorter().ValidKeys() {
				listing.SortKeys = append(listing.SortKeys, sortKeyInfo{Key: k, Label: k.Label()})
			}

			if format != outputText {
				return writeStructured(cmd.OutOrStdout(), format, listing)
			}
			return writeOptionsText(cmd.OutOrStdout(), listing)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputText), "output format: text, json or yaml")

	return cmd
}

func writeOptionsText(w io.Writer, listing optionsListing) error {
	var b strings.Builder
	b.WriteString("Industries:\n")
	for _, v := range listing.Industries {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	b.WriteString("\nLocations:\n")
	for _, v := range listing.Locations {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	b.WriteString("\nSort keys:\n")
	for _, k := range listing.SortKeys {
		fmt.Fprintf(&b, "  %-16s %s\n", k.Key, k.Label)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
