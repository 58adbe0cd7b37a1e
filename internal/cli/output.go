package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/directory"
	"github.com/rshade/companydir/internal/pagination"
	"github.com/rshade/companydir/internal/tui"
)

// outputFormat is the --output flag value.
type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

const yamlIndent = 2

var errUnsupportedOutput = errors.New("unsupported output format")

// parseOutputFormat validates the --output flag.
func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case outputText, outputJSON, outputYAML:
		return f, nil
	case "":
		return outputText, nil
	default:
		return "", fmt.Errorf("%w: %q (must be text, json or yaml)", errUnsupportedOutput, s)
	}
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputText:
		return fmt.Errorf("%w: text is not a structured format", errUnsupportedOutput)
	default:
		return fmt.Errorf("%w: %q", errUnsupportedOutput, format)
	}
}

// companyListing is the structured form of one page of results.
type companyListing struct {
	Companies  []company.Company         `json:"companies"  yaml:"companies"`
	Pagination pagination.PaginationMeta `json:"pagination" yaml:"pagination"`
	Criteria   company.Criteria          `json:"criteria"   yaml:"criteria"`
	View       company.ViewMode          `json:"view"       yaml:"view"`
}

func newCompanyListing(snap directory.Snapshot) companyListing {
	return companyListing{
		Companies:  snap.Items,
		Pagination: snap.Meta(),
		Criteria:   snap.Criteria,
		View:       snap.View,
	}
}

// detectMode picks how text output is rendered for the current terminal.
func detectMode(plain bool) tui.OutputMode {
	return tui.DetectOutputMode(plain, false, os.Getenv("CI") != "")
}

// renderSnapshot writes a page of results in the given format.
func renderSnapshot(w io.Writer, format outputFormat, mode tui.OutputMode, snap directory.Snapshot) error {
	if format != outputText {
		return writeStructured(w, format, newCompanyListing(snap))
	}
	if mode != tui.OutputModePlain {
		_, err := fmt.Fprintln(w, tui.RenderSnapshot(snap, tui.TerminalWidth()))
		return err
	}
	return renderPlainSnapshot(w, snap)
}

// renderPlainSnapshot writes unstyled text: a summary line, then the page as a table or as blocks.
func renderPlainSnapshot(w io.Writer, snap directory.Snapshot) error {
	summary := tui.ResultCount(snap.TotalCount) + "  Sort: " + snap.Criteria.Sort.Label()
	if snap.TotalPages > 0 {
		summary += fmt.Sprintf("  Page %d/%d", snap.CurrentPage, snap.TotalPages)
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}

	if snap.IsEmpty() {
		_, err := fmt.Fprintf(w, "\n%s\n%s\n", tui.EmptyTitle, tui.EmptyMessage)
		return err
	}
	if snap.View == company.ViewTable {
		return writeCompanyTable(w, snap.Items)
	}
	return writeCompanyBlocks(w, snap.Items)
}

// writeCompanyTable writes one row per company.
func writeCompanyTable(w io.Writer, items []company.Company) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ID\tCOMPANY\tINDUSTRY\tLOCATION\tEMPLOYEES\tFOUNDED\tREVENUE")
	for _, c := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID, c.Name, c.Industry, c.Location, tui.FormatEmployees(c.Employees), c.Founded, c.Revenue)
	}
	return tw.Flush()
}

// writeCompanyBlocks writes the grid view as one short block per company.
func writeCompanyBlocks(w io.Writer, items []company.Company) error {
	var b strings.Builder
	for _, c := range items {
		fmt.Fprintf(&b, "\n%s (%s)\n", c.Name, c.ID)
		if c.Website != "" {
			fmt.Fprintf(&b, "  %s\n", c.Website)
		}
		fmt.Fprintf(&b, "  %s | %s\n", c.Industry, c.Location)
		fmt.Fprintf(&b, "  %s employees | Founded %d | %s revenue\n",
			tui.FormatEmployees(c.Employees), c.Founded, c.Revenue)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeCompanyDetail writes every field of c as label/value pairs.
func writeCompanyDetail(w io.Writer, c company.Company) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	rows := [][2]string{
		{"ID", c.ID},
		{"Name", c.Name},
		{"Industry", c.Industry},
		{"Location", c.Location},
		{"Employees", tui.FormatEmployees(c.Employees)},
		{"Founded", strconv.Itoa(c.Founded)},
		{"Revenue", c.Revenue},
		{"Website", c.Website},
		{"Logo", c.LogoRef()},
		{"Description", c.Description},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
