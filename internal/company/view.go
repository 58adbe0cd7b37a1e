package company

import (
	"fmt"
	"strings"
)

// ViewMode selects how a page of records is presented.
type ViewMode string

// Supported view modes.
const (
	ViewGrid  ViewMode = "grid"
	ViewTable ViewMode = "table"

	// DefaultView is the view mode of a fresh session.
	DefaultView = ViewGrid
)

// Toggle returns the other view mode.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewTable {
		return ViewGrid
	}
	return ViewTable
}

// ParseViewMode parses "grid" or "table" (case-insensitive).
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewGrid:
		return ViewGrid, nil
	case ViewTable:
		return ViewTable, nil
	default:
		return "", fmt.Errorf("invalid view mode %q: must be grid or table", s)
	}
}
