package pagination

// Page is one window of an ordered sequence.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	TotalPages  int
	TotalItems  int
}

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// TotalPages returns ceil(count / pageSize). Zero items, or a non-positive page size, give zero pages.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	pages := count / pageSize
	if count%pageSize > 0 {
		pages++
	}
	return pages
}

// Paginate returns items[(page-1)*pageSize : page*pageSize], clamped to the sequence.
// A page outside [1, TotalPages] yields an empty slice rather than an error or the last page.
// The returned Items share the backing array of items.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	result := Page[T]{
		Items:       []T{},
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  TotalPages(len(items), pageSize),
		TotalItems:  len(items),
	}

	if page < 1 || page > result.TotalPages {
		return result
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	result.Items = items[start:end:end]
	return result
}
