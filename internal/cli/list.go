package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/directory"
	"github.com/rshade/companydir/internal/logging"
	"github.com/rshade/companydir/internal/pagination"
)

type listOptions struct {
	search   string
	industry string
	location string
	sort     string
	page     int
	pageSize int
	view     string
	output   string
	plain    bool
	all      bool
}

// NewListCmd creates the list command, which prints one page of filtered, sorted companies.
func NewListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a page of companies",
		Long: `Filters, sorts and pages the directory and prints the requested page.

Search matches company names and descriptions case-insensitively. Industry and location
must match exactly. Sort accepts a key such as "employees-desc" or a field with an
optional order such as "employees:desc" or "founded".`,
		Example: `  # First page, default sort
  companydir list

  # Technology companies in Austin as YAML
  companydir list --industry Technology --location "Austin, TX" --output yaml

  # Oldest companies first, 5 per page, second page
  companydir list --sort founded:asc --page-size 5 --page 2

  # Every match on a single page
  companydir list --industry Finance --all --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive search over name and description")
	cmd.Flags().StringVar(&opts.industry, "industry", "", "exact industry to include")
	cmd.Flags().StringVar(&opts.location, "location", "", "exact location to include")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort key, e.g. name-asc, employees:desc, founded")
	cmd.Flags().IntVar(&opts.page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "companies per page (default from config)")
	cmd.Flags().StringVar(&opts.view, "view", "", "grid or table (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(outputText), "output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable styling for text output")
	cmd.Flags().BoolVar(&opts.all, "all", false, "print every matching company on one page")
	cmd.MarkFlagsMutuallyExclusive("all", "page")

	return cmd
}

// parseSortFlag turns "field", "field:order" or a full key into a SortKey.
func parseSortFlag(s string) (company.SortKey, error) {
	field, order, err := pagination.ParseSort(s)
	if err != nil {
		return "", err
	}
	return company.ParseSortKey(field + "-" + order)
}

func buildCriteria(opts listOptions) (company.Criteria, error) {
	criteria := company.DefaultCriteria()
	criteria.Search = opts.search
	if opts.industry != "" {
		criteria.Industry = opts.industry
	}
	if opts.location != "" {
		criteria.Location = opts.location
	}
	sortKey, err := parseSortFlag(opts.sort)
	if err != nil {
		return company.Criteria{}, err
	}
	criteria.Sort = sortKey
	return criteria, nil
}

func runList(cmd *cobra.Command, opts listOptions) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	log := logging.FromContext(ctx)

	format, err := parseOutputFormat(opts.output)
	if err != nil {
		return err
	}

	criteria, err := buildCriteria(opts)
	if err != nil {
		return err
	}

	params := pagination.NewPaginationParams()
	params.Page = opts.page
	params.PageSize = cfg.Display.PageSize
	if opts.pageSize != 0 {
		params.PageSize = opts.pageSize
	}
	if err = params.Validate(); err != nil {
		return err
	}

	var view company.ViewMode
	if opts.view != "" {
		if view, err = company.ParseViewMode(opts.view); err != nil {
			return err
		}
	}

	session, err := loadSession(ctx, cfg, sessionSettings{pageSize: params.PageSize})
	if err != nil {
		return err
	}
	defer closeSession(ctx, session)
	session.SetCriteria(criteria)
	if view != "" {
		session.SetView(view)
	}

	if params.Page != pagination.DefaultPage && !session.GoToPage(params.Page) {
		snap := session.Snapshot()
		log.Warn().Ctx(ctx).
			Int("page", params.Page).
			Int("total_pages", snap.TotalPages).
			Msg("requested page out of range")
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: page %d is out of range (%d pages), showing page %d\n",
			params.Page, snap.TotalPages, snap.CurrentPage)
	}

	snap := session.Snapshot()
	if opts.all {
		snap = singlePage(snap, session.Filtered())
	}
	log.Debug().Ctx(ctx).
		Int("total", snap.TotalCount).
		Int("page", snap.CurrentPage).
		Str("sort", string(snap.Criteria.Sort)).
		Msg("list rendered")

	return renderSnapshot(cmd.OutOrStdout(), format, detectMode(opts.plain), snap)
}

// singlePage replaces the visible page of snap with every matching record.
func singlePage(snap directory.Snapshot, matches []company.Company) directory.Snapshot {
	if matches == nil {
		matches = []company.Company{}
	}
	snap.Items = matches
	snap.CurrentPage = pagination.DefaultPage
	snap.PageSize = max(len(matches), pagination.MinPageSize)
	snap.TotalPages = pagination.TotalPages(len(matches), snap.PageSize)
	return snap
}
