package diagnostics

// Severity levels reported by pyright
const (
	SeverityError       = "error"
	SeverityWarning     = "warning"
	SeverityInformation = "information"
)

// Position is a zero-based line/column location in a source file
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is the span of source code a diagnostic applies to
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic represents a single issue reported by the type-checking engine
type Diagnostic struct {
	File     string `json:"file"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Rule     string `json:"rule,omitempty"`
	Range    Range  `json:"range"`
}

// Summary contains aggregate counts over the FULL analysis run.
// The counts always describe the whole run, never the current page.
type Summary struct {
	FilesAnalyzed    int     `json:"filesAnalyzed"`
	ErrorCount       int     `json:"errorCount"`
	WarningCount     int     `json:"warningCount"`
	InformationCount int     `json:"informationCount"`
	TimeInSec        float64 `json:"timeInSec"`
}

// PaginationInfo describes the effective page actually returned after clamping
type PaginationInfo struct {
	CurrentPage      int  `json:"current_page"`
	TotalPages       int  `json:"total_pages"`
	PageSize         int  `json:"page_size"`
	TotalDiagnostics int  `json:"total_diagnostics"`
	HasNextPage      bool `json:"has_next_page"`
	HasPreviousPage  bool `json:"has_previous_page"`
}

// CheckResult is the structured result returned to callers.
// Diagnostics holds the current page only; Summary and
// Pagination.TotalDiagnostics describe the full set.
type CheckResult struct {
	Summary     Summary        `json:"summary"`
	Diagnostics []Diagnostic   `json:"diagnostics"`
	Version     string         `json:"version,omitempty"`
	Pagination  PaginationInfo `json:"pagination"`
}

// EngineOutput mirrors the JSON document pyright emits with --outputjson
type EngineOutput struct {
	Version            string       `json:"version"`
	Time               string       `json:"time"`
	GeneralDiagnostics []Diagnostic `json:"generalDiagnostics"`
	Summary            Summary      `json:"summary"`
}
