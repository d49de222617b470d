package diagnostics

// Transform shapes a raw engine output document into the paginated result
// returned to callers. Diagnostics without a file association are dropped
// and a missing severity defaults to "error", matching pyright's own
// convention for unspecified severities.
func Transform(out EngineOutput, page, pageSize int) CheckResult {
	diags := make([]Diagnostic, 0, len(out.GeneralDiagnostics))
	for _, d := range out.GeneralDiagnostics {
		if d.File == "" {
			continue
		}
		if d.Severity == "" {
			d.Severity = SeverityError
		}
		diags = append(diags, d)
	}

	pageSlice, info := Paginate(diags, page, pageSize)

	return Assemble(out.Summary, pageSlice, out.Version, info)
}
