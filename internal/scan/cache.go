package scan

import (
	"fmt"
	"os"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/class-outline/internal/outline"
)

// DefaultCacheCapacity bounds the number of cached files.
const DefaultCacheCapacity = 10_000

// fileKey identifies one version of a file. A write changes size or mtime,
// which turns the next lookup into a miss.
type fileKey struct {
	path    string
	size    int64
	modTime int64
}

// ExtractionCache remembers the classes extracted from unchanged files
// between scans, so watch mode only re-reads what was edited.
type ExtractionCache struct {
	cache otter.Cache[fileKey, []outline.ClassInfo]
}

// NewExtractionCache creates a cache holding up to capacity files.
func NewExtractionCache(capacity int) (*ExtractionCache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}

	cache, err := otter.MustBuilder[fileKey, []outline.ClassInfo](capacity).
		WithTTL(24 * time.Hour).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction cache: %w", err)
	}

	return &ExtractionCache{cache: cache}, nil
}

// keyFor stats path. ok is false when the file cannot be stat'ed, in which
// case the caller reads it uncached and reports the read error.
func keyFor(path string) (fileKey, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileKey{}, false
	}
	return fileKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}, true
}

func (c *ExtractionCache) get(key fileKey) ([]outline.ClassInfo, bool) {
	return c.cache.Get(key)
}

func (c *ExtractionCache) set(key fileKey, classes []outline.ClassInfo) {
	c.cache.Set(key, classes)
}

// Len returns the number of cached files.
func (c *ExtractionCache) Len() int {
	return c.cache.Size()
}

// Close releases the cache's background resources.
func (c *ExtractionCache) Close() {
	c.cache.Close()
}
