package company

import (
	"errors"
	"fmt"
)

// PlaceholderLogo is the logo reference used when a record carries none.
const PlaceholderLogo = "/placeholder.svg"

// Company is a single directory record.
type Company struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Industry    string `json:"industry"    yaml:"industry"`
	Location    string `json:"location"    yaml:"location"`
	Employees   int    `json:"employees"   yaml:"employees"`
	Founded     int    `json:"founded"     yaml:"founded"`
	Revenue     string `json:"revenue"     yaml:"revenue"`
	Description string `json:"description" yaml:"description"`
	Website     string `json:"website"     yaml:"website"`
	Logo        string `json:"logo"        yaml:"logo"`
}

// LogoRef returns the record's logo reference, falling back to PlaceholderLogo.
func (c Company) LogoRef() string {
	if c.Logo == "" {
		return PlaceholderLogo
	}
	return c.Logo
}

// Validation errors returned by Validate.
var (
	ErrMissingID         = errors.New("company id is required")
	ErrDuplicateID       = errors.New("duplicate company id")
	ErrNegativeEmployees = errors.New("employee count cannot be negative")
)

// Validate checks the invariants a fetched collection must hold: non-empty unique IDs and
// non-negative employee counts. Revenue is a display string and is not checked.
func Validate(records []Company) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.ID == "" {
			return fmt.Errorf("record %d: %w", i, ErrMissingID)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("record %d: %w: %q", i, ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Employees < 0 {
			return fmt.Errorf("record %q: %w", r.ID, ErrNegativeEmployees)
		}
	}
	return nil
}

// Find returns the record with the given ID.
func Find(records []Company, id string) (Company, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Company{}, false
}
