package diagnostics

// Normalize clamps raw caller-supplied pagination parameters into a safe
// operating range. A page size below 1 becomes 1, a page below 1 becomes 1,
// and a page beyond the last page becomes the last page. Out-of-range values
// are never an error: automated callers iterating pages should not crash on
// an off-by-one, so clamping is silent and total.
func Normalize(page, pageSize, totalDiagnostics int) (int, int) {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := TotalPages(totalDiagnostics, pageSize)

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return page, pageSize
}

// TotalPages computes the page count by ceiling division. Zero diagnostics
// still occupy one empty page, so a valid current page always exists.
func TotalPages(totalDiagnostics, pageSize int) int {
	pages := (totalDiagnostics + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Paginate returns the requested page of diagnostics together with its
// pagination metadata. The input slice is never mutated; the returned slice
// is a contiguous sub-slice preserving the engine-reported order. Every page
// except possibly the last holds exactly pageSize diagnostics.
func Paginate(diags []Diagnostic, page, pageSize int) ([]Diagnostic, PaginationInfo) {
	total := len(diags)
	page, pageSize = Normalize(page, pageSize, total)
	totalPages := TotalPages(total, pageSize)

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	info := PaginationInfo{
		CurrentPage:      page,
		TotalPages:       totalPages,
		PageSize:         pageSize,
		TotalDiagnostics: total,
		HasNextPage:      page < totalPages,
		HasPreviousPage:  page > 1,
	}

	return diags[start:end], info
}
