package query

// Paginate returns the page-th slice of items (1-based) with pageSize items
// per page. An out-of-range page yields an empty slice; callers that want
// clamping clamp before calling.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize <= 0 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageCount returns the number of pages needed for totalItems.
func PageCount(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// PageWindowEntry is one element of the abbreviated pagination control:
// either a clickable page number or a gap marker.
type PageWindowEntry struct {
	Page int  `json:"page,omitempty"`
	Gap  bool `json:"gap,omitempty"`
}

// BuildPageWindow computes the abbreviated page-number sequence: page 1, the
// last page, every page within radius of currentPage, and a single gap
// marker wherever the included pages skip more than one. A single page (or
// none) produces no controls at all.
func BuildPageWindow(totalItems, currentPage, pageSize, radius int) []PageWindowEntry {
	pageCount := PageCount(totalItems, pageSize)
	if pageCount <= 1 {
		return []PageWindowEntry{}
	}

	window := make([]PageWindowEntry, 0, 2*radius+4)
	last := 0
	for page := 1; page <= pageCount; page++ {
		include := page == 1 || page == pageCount ||
			(page >= currentPage-radius && page <= currentPage+radius)
		if !include {
			continue
		}
		if last > 0 && page > last+1 {
			window = append(window, PageWindowEntry{Gap: true})
		}
		window = append(window, PageWindowEntry{Page: page})
		last = page
	}
	return window
}
