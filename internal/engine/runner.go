package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog/log"

	"github.com/pycheck/internal/diagnostics"
)

// DefaultTimeout bounds a single pyright run.
const DefaultTimeout = 5 * time.Minute

// DefaultSeverity is the minimum severity passed to pyright when the caller
// does not specify one.
const DefaultSeverity = diagnostics.SeverityWarning

// Options configures a single pyright invocation.
type Options struct {
	// ProjectPath is the directory to analyze.
	ProjectPath string
	// Severity is the minimum severity level to report (error, warning, information).
	Severity string
	// PyrightPath overrides executable lookup when set.
	PyrightPath string
	// Timeout bounds the run; DefaultTimeout applies when zero.
	Timeout time.Duration
}

// lookPath is swapped out in tests
var lookPath = exec.LookPath

// resolveCommand locates the pyright executable: an explicit path wins, then
// pyright on PATH, then npx as a fallback.
func resolveCommand(opts Options) ([]string, error) {
	if opts.PyrightPath != "" {
		return []string{opts.PyrightPath}, nil
	}
	if p, err := lookPath("pyright"); err == nil {
		return []string{p}, nil
	}
	if p, err := lookPath("npx"); err == nil {
		return []string{p, "pyright"}, nil
	}
	return nil, errors.New(
		"pyright not found: install it via 'npm install -g pyright' or 'pip install pyright'")
}

// buildArgs constructs the pyright argument list. hasProjectConfig reports
// whether the project carries its own pyrightconfig.json.
func buildArgs(opts Options, hasProjectConfig bool) []string {
	severity := opts.Severity
	if severity == "" {
		severity = DefaultSeverity
	}

	args := []string{
		opts.ProjectPath,
		"--outputjson",
		fmt.Sprintf("--level=%s", severity),
	}

	if hasProjectConfig {
		args = append(args, "--project", filepath.Join(opts.ProjectPath, "pyrightconfig.json"))
	}

	return args
}

// Run executes pyright against the project and returns its parsed output.
// Pyright exits non-zero whenever it reports errors or warnings, so the exit
// code is ignored as long as stdout carries a JSON document.
func Run(ctx context.Context, opts Options) (diagnostics.EngineOutput, error) {
	var out diagnostics.EngineOutput

	cmdline, err := resolveCommand(opts)
	if err != nil {
		return out, err
	}

	hasProjectConfig := false
	if _, err := os.Stat(filepath.Join(opts.ProjectPath, "pyrightconfig.json")); err == nil {
		hasProjectConfig = true
	}

	args := append(cmdline[1:], buildArgs(opts, hasProjectConfig)...)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug().
		Str("executable", cmdline[0]).
		Strs("args", args).
		Str("project", opts.ProjectPath).
		Msg("Running pyright")

	cmd := exec.CommandContext(ctx, cmdline[0], args...)
	cmd.Dir = opts.ProjectPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return out, fmt.Errorf("pyright execution timed out after %s", timeout)
	}

	if stdout.Len() > 0 {
		return parseOutput(stdout.Bytes())
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return out, fmt.Errorf("failed to run pyright: %w", runErr)
		}
	}

	// no stdout usually means no Python files or a fatal startup error
	if stderr.Len() > 0 {
		return out, fmt.Errorf("pyright error: %s", strings.TrimSpace(stderr.String()))
	}

	return emptyOutput(), nil
}

// parseOutput decodes pyright's JSON document. Pyright occasionally
// interleaves npm/npx noise with its output, so a repair pass is attempted
// before giving up.
func parseOutput(raw []byte) (diagnostics.EngineOutput, error) {
	var out diagnostics.EngineOutput

	if err := json.Unmarshal(raw, &out); err == nil {
		return out, nil
	}

	repaired, err := jsonrepair.JSONRepair(string(raw))
	if err != nil {
		return out, fmt.Errorf("failed to parse pyright output: %w (output: %s)", err, truncate(raw, 500))
	}
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		return out, fmt.Errorf("failed to parse pyright output: %w (output: %s)", err, truncate(raw, 500))
	}

	log.Warn().Msg("pyright output required JSON repair before parsing")
	return out, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// emptyOutput synthesizes the result for a project with nothing to analyze.
func emptyOutput() diagnostics.EngineOutput {
	return diagnostics.EngineOutput{
		Version:            "unknown",
		Time:               "0",
		GeneralDiagnostics: []diagnostics.Diagnostic{},
		Summary:            diagnostics.Summary{},
	}
}
