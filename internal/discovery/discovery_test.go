package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileDiscovery:
// - Brace alternation include pattern matches every listed extension
// - "**/" patterns match files at the root as well as nested files
// - node_modules is skipped at any depth
// - .outline directory is always skipped
// - Results come back in lexical walk order
// - Invalid glob pattern is rejected at construction
// - Cancelled context aborts the walk
// - Extensions() expands brace alternation
// - ShouldSkipDir and Matches agree with DiscoverFiles

var defaultInclude = []string{"**/*.{ts,js,tsx,jsx,java,py,cs}"}
var defaultIgnore = []string{"**/node_modules/**"}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("class X {}"), 0644))
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscoverFiles_DefaultPatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root,
		"main.ts",
		"README.md",
		"src/app.js",
		"src/View.tsx",
		"src/Button.jsx",
		"src/deep/Service.java",
		"tools/gen.py",
		"Program.cs",
		"src/notes.txt",
		"node_modules/lib/index.js",
		"src/node_modules/dep/index.ts",
		".outline/cache.ts",
	)

	fd, err := NewFileDiscovery(root, defaultInclude, defaultIgnore)
	require.NoError(t, err)

	files, err := fd.DiscoverFiles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Program.cs",
		"main.ts",
		"src/Button.jsx",
		"src/View.tsx",
		"src/app.js",
		"src/deep/Service.java",
		"tools/gen.py",
	}, rel(t, root, files))
}

func TestDiscoverFiles_EmptyTree(t *testing.T) {
	t.Parallel()

	fd, err := NewFileDiscovery(t.TempDir(), defaultInclude, defaultIgnore)
	require.NoError(t, err)

	files, err := fd.DiscoverFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverFiles_MissingRoot(t *testing.T) {
	t.Parallel()

	fd, err := NewFileDiscovery(filepath.Join(t.TempDir(), "missing"), defaultInclude, defaultIgnore)
	require.NoError(t, err)

	_, err = fd.DiscoverFiles(context.Background())
	assert.Error(t, err)
}

func TestDiscoverFiles_CancelledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, "a.ts", "b/c.ts")

	fd, err := NewFileDiscovery(root, defaultInclude, defaultIgnore)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fd.DiscoverFiles(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"**/*.[ts"}, nil)
	assert.Error(t, err)

	_, err = NewFileDiscovery(t.TempDir(), defaultInclude, []string{"[a-"})
	assert.Error(t, err)
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	fd, err := NewFileDiscovery(t.TempDir(), []string{"**/*.{ts,js}", "*.py", "**/*.ts", "Makefile"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{".js", ".py", ".ts"}, fd.Extensions())
}

func TestExtractExtensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    []string
	}{
		{"**/*.go", []string{".go"}},
		{"*.{ts, tsx}", []string{".ts", ".tsx"}},
		{"src/**/*.java", []string{".java"}},
		{"Makefile", nil},
		{"**/*.t?", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractExtensions(tt.pattern), tt.pattern)
	}
}

func TestShouldSkipDirAndMatches(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fd, err := NewFileDiscovery(root, defaultInclude, defaultIgnore)
	require.NoError(t, err)

	assert.False(t, fd.ShouldSkipDir(root))
	assert.False(t, fd.ShouldSkipDir(filepath.Join(root, "src")))
	assert.True(t, fd.ShouldSkipDir(filepath.Join(root, "node_modules")))
	assert.True(t, fd.ShouldSkipDir(filepath.Join(root, "pkg", "node_modules")))
	assert.True(t, fd.ShouldSkipDir(filepath.Join(root, ".outline")))

	assert.True(t, fd.Matches(filepath.Join(root, "src", "a.ts")))
	assert.True(t, fd.Matches(filepath.Join(root, "a.py")))
	assert.False(t, fd.Matches(filepath.Join(root, "README.md")))
	assert.False(t, fd.Matches(filepath.Join(root, "node_modules", "x", "a.ts")))
	assert.False(t, fd.Matches(filepath.Join(filepath.Dir(root), "outside.ts")))
}
