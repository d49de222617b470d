package checker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pycheck/internal/config"
	"github.com/pycheck/internal/diagnostics"
	"github.com/pycheck/internal/discovery"
	"github.com/pycheck/internal/engine"
)

// Service orchestrates one analysis request: discover files, run the engine,
// shape the result. It holds no state between calls.
type Service struct {
	cfg *config.Config

	// indirections for tests
	run  func(ctx context.Context, opts engine.Options) (diagnostics.EngineOutput, error)
	find func(rootDir string, extraPatterns []string) ([]string, error)
}

// New creates a checker service backed by the real engine and file finder.
func New(cfg *config.Config) *Service {
	return &Service{
		cfg:  cfg,
		run:  engine.Run,
		find: discovery.FindPythonFiles,
	}
}

// CheckParams are the caller-supplied parameters of a type check request.
// Page and PageSize arrive unvalidated from the transport boundary; the
// pagination core clamps them rather than rejecting.
type CheckParams struct {
	SeverityLevel  string
	IgnorePatterns []string
	Page           int
	PageSize       int
}

// Check runs the type-checking engine against the configured target path and
// returns the requested page of diagnostics with full-set summary counts.
func (s *Service) Check(ctx context.Context, params CheckParams) (diagnostics.CheckResult, error) {
	var result diagnostics.CheckResult

	runID := uuid.NewString()
	target := s.cfg.Analysis.TargetPath

	if _, err := os.Stat(target); err != nil {
		return result, fmt.Errorf("path not found: %s", target)
	}

	severity := params.SeverityLevel
	if severity == "" {
		severity = s.cfg.Analysis.Severity
	}

	log.Info().
		Str("run_id", runID).
		Str("target", target).
		Str("severity", severity).
		Msg("Starting pyright analysis")

	files, err := s.find(target, params.IgnorePatterns)
	if err != nil {
		return result, fmt.Errorf("file discovery failed: %w", err)
	}
	log.Info().
		Str("run_id", runID).
		Int("files", len(files)).
		Msg("Discovered Python files to analyze")

	out, err := s.run(ctx, engine.Options{
		ProjectPath: target,
		Severity:    severity,
		PyrightPath: s.cfg.Analysis.PyrightPath,
		Timeout:     time.Duration(s.cfg.Analysis.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("Pyright analysis failed")
		return result, err
	}

	result = diagnostics.Transform(out, params.Page, params.PageSize)

	log.Info().
		Str("run_id", runID).
		Int("errors", result.Summary.ErrorCount).
		Int("warnings", result.Summary.WarningCount).
		Int("information", result.Summary.InformationCount).
		Int("files_analyzed", result.Summary.FilesAnalyzed).
		Int("page", result.Pagination.CurrentPage).
		Int("total_pages", result.Pagination.TotalPages).
		Int("total_diagnostics", result.Pagination.TotalDiagnostics).
		Msg("Analysis complete")

	return result, nil
}

// ListFiles returns the Python files that a check would analyze.
func (s *Service) ListFiles(_ context.Context, ignorePatterns []string) ([]string, error) {
	target := s.cfg.Analysis.TargetPath

	if _, err := os.Stat(target); err != nil {
		return nil, fmt.Errorf("path not found: %s", target)
	}

	files, err := s.find(target, ignorePatterns)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	log.Info().
		Str("target", target).
		Int("files", len(files)).
		Msg("Listed Python files")

	return files, nil
}

// DefaultPageSize exposes the configured page size for transports to apply
// when the caller omits page_size entirely.
func (s *Service) DefaultPageSize() int {
	if s.cfg.Pagination.DefaultPageSize > 0 {
		return s.cfg.Pagination.DefaultPageSize
	}
	return 50
}
