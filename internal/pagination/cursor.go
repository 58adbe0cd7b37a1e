package pagination

// Cursor tracks the current page over a sequence whose length may change between renders.
//
// Cursor is a value type: every transition returns a new Cursor and leaves the receiver untouched,
// so callers hold exactly one current cursor in their own state.
type Cursor struct {
	page      int
	pageSize  int
	lastCount int
	observed  bool
}

// NewCursor returns a cursor on page 1. A non-positive pageSize falls back to DefaultPageSize.
func NewCursor(pageSize int) Cursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Cursor{page: DefaultPage, pageSize: pageSize}
}

// Page returns the current 1-based page number.
func (c Cursor) Page() int {
	if c.page < 1 {
		return DefaultPage
	}
	return c.page
}

// PageSize returns the fixed page size.
func (c Cursor) PageSize() int {
	if c.pageSize <= 0 {
		return DefaultPageSize
	}
	return c.pageSize
}

// Observe records the length of the sequence about to be paged.
// If it differs from the previously observed length the cursor resets to page 1, so a filter that
// narrows the result never leaves a stale page number pointing past the end.
func (c Cursor) Observe(count int) Cursor {
	if !c.observed || count != c.lastCount {
		c.page = DefaultPage
	}
	c.lastCount = count
	c.observed = true
	return c
}

// GoTo moves to target when it lies within [1, TotalPages(count)].
// Out-of-range targets leave the cursor unchanged and report false.
func (c Cursor) GoTo(target, count int) (Cursor, bool) {
	if target < 1 || target > TotalPages(count, c.PageSize()) {
		return c, false
	}
	c.page = target
	return c, true
}

// Next advances one page if possible.
func (c Cursor) Next(count int) (Cursor, bool) {
	return c.GoTo(c.Page()+1, count)
}

// Prev goes back one page if possible.
func (c Cursor) Prev(count int) (Cursor, bool) {
	return c.GoTo(c.Page()-1, count)
}

// Window observes items and returns the current page together with the updated cursor.
func Window[T any](c Cursor, items []T) (Page[T], Cursor) {
	c = c.Observe(len(items))
	return Paginate(items, c.PageSize(), c.Page()), c
}
