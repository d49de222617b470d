package diagnostics

// Assemble composes the final structured result from its parts. Summary and
// version pass through untouched: the summary keeps describing the full
// analysis run even though Diagnostics holds only the current page. Callers
// wanting the true total must read Pagination.TotalDiagnostics, not
// len(Diagnostics).
func Assemble(summary Summary, pageSlice []Diagnostic, version string, info PaginationInfo) CheckResult {
	if pageSlice == nil {
		pageSlice = []Diagnostic{}
	}
	return CheckResult{
		Summary:     summary,
		Diagnostics: pageSlice,
		Version:     version,
		Pagination:  info,
	}
}
