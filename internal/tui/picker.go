package tui

import (
	"fmt"
	"slices"

	"github.com/rshade/companydir/internal/company"
	listview "github.com/rshade/companydir/internal/tui/list"
)

// pickerKind selects which criterion a picker edits.
type pickerKind int

const (
	pickIndustry pickerKind = iota
	pickLocation
)

const pickerChrome = 4

// picker is a single-choice list over the filter options of one criterion.
type picker struct {
	kind    pickerKind
	current string
	list    *listview.VirtualListModel[string]
}

func newPicker(kind pickerKind, opts company.FilterOptions, current string, width, height int) *picker {
	options := opts.Industries
	if kind == pickLocation {
		options = opts.Locations
	}

	p := &picker{kind: kind, current: current}
	p.list = listview.NewVirtualListModel(options, max(minHeight, height-pickerChrome), width, p.renderOption)
	if idx := slices.Index(options, current); idx >= 0 {
		p.list.SetSelected(idx)
	}
	return p
}

func (p *picker) title() string {
	if p.kind == pickLocation {
		return "SELECT LOCATION"
	}
	return "SELECT INDUSTRY"
}

func (p *picker) renderOption(option string, selected bool) string {
	marker := "  "
	if option == p.current {
		marker = "● "
	}
	row := marker + option
	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

// position shows the cursor index among the options, e.g. "2 of 5".
func (p *picker) position() string {
	return fmt.Sprintf("%d of %d", p.list.Selected()+1, p.list.ItemCount())
}

// choice returns the option under the cursor.
func (p *picker) choice() (string, bool) {
	return p.list.SelectedItem()
}
