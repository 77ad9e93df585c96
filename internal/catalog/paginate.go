package catalog

// DefaultPageSize is the number of cards shown per page.
const DefaultPageSize = 20

// TotalPages returns max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := count / pageSize
	if count%pageSize != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ValidPage reports whether page lies in [1, totalPages].
func ValidPage(page, totalPages int) bool {
	return page >= 1 && page <= totalPages
}

// Paginate returns the items of the given 1-indexed page and the page count.
// A page outside [1, totalPages] is empty.
func Paginate(filtered []Card, page, pageSize int) ([]Card, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := TotalPages(len(filtered), pageSize)

	if page < 1 || page > totalPages {
		return []Card{}, totalPages
	}
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []Card{}, totalPages
	}
	end := start + min(pageSize, len(filtered)-start)

	return filtered[start:end:end], totalPages
}
