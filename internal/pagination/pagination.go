// Package pagination holds the page/offset arithmetic shared by the
// collections and books listings. Pages are 1-based.
package pagination

// DefaultPageSize is the number of items shown per listing page.
const DefaultPageSize = 5

// PageCount returns the number of pages needed to show totalItems.
// Zero items means zero pages.
func PageCount(totalItems int64, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return int((totalItems + int64(pageSize) - 1) / int64(pageSize))
}

// IsValidPage reports whether page falls within 1..PageCount. When there are
// no items, no page is valid; callers special-case the empty listing instead.
func IsValidPage(page int, totalItems int64, pageSize int) bool {
	if page < 1 {
		return false
	}
	return page <= PageCount(totalItems, pageSize)
}

// Offset returns the query offset for a 1-based page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}
