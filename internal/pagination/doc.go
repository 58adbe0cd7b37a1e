// Package pagination provides page slicing, page-count derivation, and a bounds-safe page cursor.
//
// This package contains the paging logic shared by the interactive browser and the CLI:
//   - Paginate / TotalPages: pure slicing of an ordered sequence into fixed-size pages
//   - Cursor: the current page, reset to 1 whenever the paged sequence changes length
//   - Meta: response metadata for structured output
//   - Params: CLI flag parsing and validation
//
// Pages are 1-based. A sequence of zero items has zero pages; callers render that as an empty state.
package pagination
