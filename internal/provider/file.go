package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/companydir/internal/company"
)

// File reads the collection from a YAML or JSON file on every fetch.
type File struct {
	path string
}

// NewFile returns a File source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Fetch reads and decodes the file.
func (f *File) Fetch(ctx context.Context) ([]company.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(err)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, unavailable(fmt.Errorf("reading %s: %w", f.path, err))
	}
	return decode(data)
}

// Lookup reads the file and searches it for id.
func (f *File) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return lookup(ctx, f, id)
}
