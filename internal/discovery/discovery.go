package discovery

import (
	"context"
	"fmt"
	"io/fs"
	pathpkg "path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// stateDir holds outline's own configuration and is never scanned.
const stateDir = ".outline"

// compiledPattern holds the pattern string, its compiled glob, and for
// "**/"-prefixed patterns a second glob anchored at the root.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	rooted  glob.Glob
}

func (cp compiledPattern) match(relPath string) bool {
	if cp.glob.Match(relPath) {
		return true
	}
	return cp.rooted != nil && cp.rooted.Match(relPath)
}

// FileDiscovery enumerates workspace files matching include globs and not
// matching ignore globs.
type FileDiscovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewFileDiscovery compiles the include and ignore patterns for rootDir.
// Patterns use '/' as separator and are matched against root-relative paths.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includePatterns, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}

		// "**/*.ts" should also match "main.ts" at the root.
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if rooted, err := glob.Compile(simplified, '/'); err == nil {
				cp.rooted = rooted
			}
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// RootDir returns the directory discovery walks.
func (fd *FileDiscovery) RootDir() string {
	return fd.rootDir
}

// DiscoverFiles walks the directory tree and returns matching files in
// lexical walk order. Ignored directories are not descended into.
func (fd *FileDiscovery) DiscoverFiles(ctx context.Context) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path == fd.rootDir {
			return nil
		}

		relPath, err := fd.relative(path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if fd.shouldIgnoreDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.shouldIgnore(relPath) {
			return nil
		}

		if matchesAnyPattern(relPath, fd.includePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover files in %s: %w", fd.rootDir, err)
	}

	return files, nil
}

// ShouldSkipDir reports whether a directory below the root is excluded by the
// ignore patterns. The root itself is never skipped.
func (fd *FileDiscovery) ShouldSkipDir(path string) bool {
	relPath, err := fd.relative(path)
	if err != nil || relPath == "." {
		return false
	}
	return fd.shouldIgnoreDir(relPath)
}

// Matches reports whether path would be returned by DiscoverFiles.
func (fd *FileDiscovery) Matches(path string) bool {
	relPath, err := fd.relative(path)
	if err != nil || strings.HasPrefix(relPath, "../") {
		return false
	}
	if fd.shouldIgnore(relPath) {
		return false
	}
	// A file under an ignored directory is not discovered either.
	for dir := pathpkg.Dir(relPath); dir != "." && dir != "/"; dir = pathpkg.Dir(dir) {
		if fd.shouldIgnoreDir(dir) {
			return false
		}
	}
	return matchesAnyPattern(relPath, fd.includePatterns)
}

// Extensions returns the file extensions named by the include patterns, with
// a leading dot. "**/*.{ts,js}" yields ".ts" and ".js".
func (fd *FileDiscovery) Extensions() []string {
	extMap := make(map[string]bool)
	for _, cp := range fd.includePatterns {
		for _, ext := range extractExtensions(cp.pattern) {
			extMap[ext] = true
		}
	}

	extensions := make([]string, 0, len(extMap))
	for ext := range extMap {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

func (fd *FileDiscovery) relative(path string) (string, error) {
	relPath, err := filepath.Rel(fd.rootDir, path)
	if err != nil {
		return "", err
	}
	// Normalize path separators for glob matching
	return filepath.ToSlash(relPath), nil
}

// shouldIgnore checks if a file path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if strings.HasPrefix(relPath, stateDir+"/") || relPath == stateDir {
		return true
	}
	return matchesAnyPattern(relPath, fd.ignorePatterns)
}

// shouldIgnoreDir checks a directory path. "node_modules" is ignored by
// "**/node_modules/**" because "node_modules/**" matches the pattern.
func (fd *FileDiscovery) shouldIgnoreDir(relPath string) bool {
	if fd.shouldIgnore(relPath) {
		return true
	}
	return matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.match(path) {
			return true
		}
	}
	return false
}

// extractExtensions extracts file extensions from a glob pattern.
// Examples: "**/*.go" -> [".go"], "*.{ts,tsx}" -> [".ts", ".tsx"], "Makefile" -> nil
func extractExtensions(pattern string) []string {
	idx := strings.LastIndex(pattern, "*.")
	if idx < 0 {
		return nil
	}
	suffix := pattern[idx+1:]

	if strings.HasPrefix(suffix, ".{") && strings.HasSuffix(suffix, "}") {
		var exts []string
		for _, alt := range strings.Split(suffix[2:len(suffix)-1], ",") {
			if alt = strings.TrimSpace(alt); alt != "" {
				exts = append(exts, "."+alt)
			}
		}
		return exts
	}

	if strings.ContainsAny(suffix, "*?[{/") {
		return nil
	}
	return []string{suffix}
}
