package storage

// Page carries one page of items with the navigation metadata the
// presentation layer needs to render prev/next controls. Out-of-range
// requests produce an empty Items slice with both directions disabled;
// pages are never clamped or wrapped.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalCount  int
	PerPage     int
}

// HasPrev reports whether a previous page exists. Out-of-range pages
// report false in both directions.
func (p Page[T]) HasPrev() bool {
	return p.CurrentPage > 1 && p.CurrentPage <= p.TotalPages
}

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool {
	return p.CurrentPage >= 1 && p.CurrentPage < p.TotalPages
}

// NewPage assembles a Page from a fetched slice and the total row count.
func NewPage[T any](items []T, page, perPage, totalCount int) Page[T] {
	totalPages := 0
	if perPage > 0 {
		totalPages = (totalCount + perPage - 1) / perPage
	}
	return Page[T]{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PerPage:     perPage,
	}
}

// PageOffset returns the LIMIT offset for a 1-based page number.
// Pages below 1 are treated as beyond-range and select nothing sensible;
// callers rely on the empty result rather than clamping.
func PageOffset(page, perPage int) int {
	if page < 1 {
		// Offset past any realistic table so the query returns no rows.
		return 1 << 30
	}
	return (page - 1) * perPage
}
