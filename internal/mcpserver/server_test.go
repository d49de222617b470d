package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pycheck/internal/checker"
	"github.com/pycheck/internal/diagnostics"
)

// fakeChecker records the params it was called with and returns canned data.
type fakeChecker struct {
	lastParams checker.CheckParams
	result     diagnostics.CheckResult
	files      []string
	err        error
}

func (f *fakeChecker) Check(_ context.Context, params checker.CheckParams) (diagnostics.CheckResult, error) {
	f.lastParams = params
	return f.result, f.err
}

func (f *fakeChecker) ListFiles(_ context.Context, _ []string) ([]string, error) {
	return f.files, f.err
}

func (f *fakeChecker) DefaultPageSize() int { return 50 }

func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// textContent extracts the text payload of a tool result.
func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content")
	return tc.Text
}

func sampleResult(total int) diagnostics.CheckResult {
	var diags []diagnostics.Diagnostic
	for i := 0; i < total && i < 50; i++ {
		diags = append(diags, diagnostics.Diagnostic{
			File:     fmt.Sprintf("/app/code/f%d.py", i),
			Severity: diagnostics.SeverityError,
			Message:  "bad type",
		})
	}
	_, info := diagnostics.Paginate(make([]diagnostics.Diagnostic, total), 1, 50)
	return diagnostics.Assemble(
		diagnostics.Summary{FilesAnalyzed: 3, ErrorCount: total},
		diags,
		"1.1.308",
		info,
	)
}

func TestHandleCheckPythonTypes(t *testing.T) {
	fake := &fakeChecker{result: sampleResult(120)}
	s := New(fake, "0.1.0")

	req := callToolRequest("check_python_types", map[string]any{
		"severity_level": "error",
		"page":           float64(2),
		"page_size":      float64(25),
	})

	res, err := s.handleCheckPythonTypes(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, "error", fake.lastParams.SeverityLevel)
	assert.Equal(t, 2, fake.lastParams.Page)
	assert.Equal(t, 25, fake.lastParams.PageSize)

	var result diagnostics.CheckResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &result))
	assert.Equal(t, "1.1.308", result.Version)
	assert.Equal(t, 120, result.Summary.ErrorCount)
}

func TestHandleCheckDefaults(t *testing.T) {
	fake := &fakeChecker{result: sampleResult(0)}
	s := New(fake, "0.1.0")

	_, err := s.handleCheckPythonTypes(context.Background(), callToolRequest("check_python_types", nil))
	require.NoError(t, err)

	assert.Equal(t, "", fake.lastParams.SeverityLevel)
	assert.Equal(t, 1, fake.lastParams.Page)
	assert.Equal(t, 50, fake.lastParams.PageSize)
}

func TestHandleCheckFailure(t *testing.T) {
	fake := &fakeChecker{err: errors.New("pyright not found")}
	s := New(fake, "0.1.0")

	res, err := s.handleCheckPythonTypes(context.Background(), callToolRequest("check_python_types", nil))
	require.NoError(t, err, "tool failures are tool errors, not protocol errors")
	assert.True(t, res.IsError)
}

func TestHandleListPythonFiles(t *testing.T) {
	fake := &fakeChecker{files: []string{"/app/code/a.py", "/app/code/b.py"}}
	s := New(fake, "0.1.0")

	res, err := s.handleListPythonFiles(context.Background(), callToolRequest("list_python_files", nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var files []string
	require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &files))
	assert.Equal(t, fake.files, files)
}

func TestHandleListPythonFilesEmpty(t *testing.T) {
	fake := &fakeChecker{files: nil}
	s := New(fake, "0.1.0")

	res, err := s.handleListPythonFiles(context.Background(), callToolRequest("list_python_files", nil))
	require.NoError(t, err)

	// empty list serializes as [] rather than null
	assert.Equal(t, "[]", textContent(t, res))
}

func TestHandleListPythonFilesFailure(t *testing.T) {
	fake := &fakeChecker{err: errors.New("directory not found")}
	s := New(fake, "0.1.0")

	res, err := s.handleListPythonFiles(context.Background(), callToolRequest("list_python_files", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
