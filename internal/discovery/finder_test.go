package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file (and its parent directories) under root.
func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))
}

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "main.py")
	writeFile(t, root, "utils.pyi")
	writeFile(t, root, "pkg/module.py")
	writeFile(t, root, "README.md")
	writeFile(t, root, "__pycache__/main.cpython-311.pyc")
	writeFile(t, root, "__pycache__/cached.py")
	writeFile(t, root, ".venv/lib/site.py")
	writeFile(t, root, "node_modules/dep/index.py")

	return root
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestFindPythonFilesBasic(t *testing.T) {
	root := setupProject(t)

	files, err := FindPythonFiles(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.py", "pkg/module.py", "utils.pyi"}, relPaths(t, root, files))
}

func TestFindPythonFilesCustomIgnore(t *testing.T) {
	root := setupProject(t)
	writeFile(t, root, "generated/schema.py")

	files, err := FindPythonFiles(root, []string{"generated", "pkg/*.py"})
	require.NoError(t, err)

	assert.Equal(t, []string{"main.py", "utils.pyi"}, relPaths(t, root, files))
}

func TestFindPythonFilesGitignore(t *testing.T) {
	root := setupProject(t)
	writeFile(t, root, "scratch/notes.py")
	gitignore := "# local scratch space\nscratch/\n\n*.tmp\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0644))

	files, err := FindPythonFiles(root, nil)
	require.NoError(t, err)

	assert.NotContains(t, relPaths(t, root, files), "scratch/notes.py")
	assert.Contains(t, relPaths(t, root, files), "main.py")
}

func TestFindPythonFilesNonexistentDir(t *testing.T) {
	_, err := FindPythonFiles("/does/not/exist", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory not found")
}

func TestFindPythonFilesEmptyDir(t *testing.T) {
	files, err := FindPythonFiles(t.TempDir(), nil)

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindPythonFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "zebra.py")
	writeFile(t, root, "alpha.py")
	writeFile(t, root, "middle/beta.py")

	files, err := FindPythonFiles(root, nil)
	require.NoError(t, err)

	rels := relPaths(t, root, files)
	assert.Equal(t, []string{"alpha.py", "middle/beta.py", "zebra.py"}, rels)
}

func TestIgnoreMatcher(t *testing.T) {
	m := newIgnoreMatcher([]string{"__pycache__", "*.egg-info", "docs/build/", "*.pyc"})

	assert.True(t, m.matches("__pycache__"))
	assert.True(t, m.matches("pkg/__pycache__/mod.py"))
	assert.True(t, m.matches("pycheck.egg-info"))
	assert.True(t, m.matches("docs/build"))
	assert.True(t, m.matches("docs/build/html"))
	assert.True(t, m.matches("pkg/old.pyc"))

	assert.False(t, m.matches("main.py"))
	assert.False(t, m.matches("docs/source"))
	assert.False(t, m.matches("builder/x.py"))
}
