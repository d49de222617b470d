package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// defaultIgnorePatterns covers tooling and virtualenv directories that never
// contain project source worth analyzing.
var defaultIgnorePatterns = []string{
	"__pycache__",
	"*.pyc",
	".git",
	".venv",
	"venv",
	"env",
	".env",
	"node_modules",
	".mypy_cache",
	".pytest_cache",
	".ruff_cache",
	"dist",
	"build",
	"*.egg-info",
}

// FindPythonFiles walks the directory tree under rootDir and returns the
// sorted absolute paths of all .py and .pyi files, skipping anything matched
// by the default ignore patterns, the project's .gitignore, or the caller's
// extra patterns.
func FindPythonFiles(rootDir string, extraPatterns []string) ([]string, error) {
	rootPath, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
	}

	if _, err := os.Stat(rootPath); err != nil {
		return nil, fmt.Errorf("directory not found: %s", rootDir)
	}

	patterns := make([]string, 0, len(defaultIgnorePatterns)+len(extraPatterns))
	patterns = append(patterns, defaultIgnorePatterns...)
	patterns = append(patterns, extraPatterns...)
	patterns = append(patterns, readGitignore(rootPath)...)

	matcher := newIgnoreMatcher(patterns)

	var pythonFiles []string

	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == rootPath {
			return nil
		}

		rel, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if matcher.matches(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".py") && !strings.HasSuffix(path, ".pyi") {
			return nil
		}
		if matcher.matches(rel) {
			return nil
		}

		pythonFiles = append(pythonFiles, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", rootDir, err)
	}

	sort.Strings(pythonFiles)

	log.Debug().
		Str("root", rootPath).
		Int("count", len(pythonFiles)).
		Msg("Python file discovery complete")

	return pythonFiles, nil
}

// readGitignore returns the non-comment, non-blank lines of the project's
// .gitignore, if one exists.
func readGitignore(rootPath string) []string {
	data, err := os.ReadFile(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ignoreMatcher matches slash-separated relative paths against gitignore
// style patterns. It supports the subset the default patterns and typical
// .gitignore files use: bare names matching any path segment, glob patterns
// against segments, and patterns containing a slash matching against the
// whole relative path.
type ignoreMatcher struct {
	patterns []string
}

func newIgnoreMatcher(patterns []string) *ignoreMatcher {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSuffix(strings.TrimSpace(p), "/")
		p = strings.TrimPrefix(p, "/")
		if p == "" {
			continue
		}
		cleaned = append(cleaned, p)
	}
	return &ignoreMatcher{patterns: cleaned}
}

func (m *ignoreMatcher) matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	segments := strings.Split(rel, "/")

	for _, pattern := range m.patterns {
		if strings.Contains(pattern, "/") {
			if ok, _ := filepath.Match(pattern, rel); ok {
				return true
			}
			// a leading directory match ignores everything beneath it
			if strings.HasPrefix(rel, pattern+"/") {
				return true
			}
			continue
		}

		for _, seg := range segments {
			if ok, _ := filepath.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}
