package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileWatcher:
// - NewFileWatcher creates watcher successfully with valid directories
// - NewFileWatcher returns error with invalid directory
// - Single file change fires callback after debounce
// - Multiple file changes are batched into one sorted callback
// - File deleted triggers callback
// - Directory added triggers recursive watch
// - Match filter drops unrelated files
// - SkipDir keeps ignored directories unwatched
// - Context cancellation and concurrent Stop() are safe

const testDebounce = 100 * time.Millisecond

func tsOnly(path string) bool {
	return strings.HasSuffix(path, ".ts")
}

// collector records callback batches.
type collector struct {
	mu      sync.Mutex
	batches [][]string
	called  chan struct{}
}

func newCollector() *collector {
	return &collector{called: make(chan struct{}, 10)}
}

func (c *collector) callback(files []string) {
	c.mu.Lock()
	c.batches = append(c.batches, files)
	c.mu.Unlock()
	c.called <- struct{}{}
}

func (c *collector) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-c.called:
	case <-time.After(2 * time.Second):
		t.Fatal("Callback not called after timeout")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches[len(c.batches)-1]
}

func (c *collector) expectNone(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case <-c.called:
		t.Fatal("Callback should not be called")
	case <-time.After(d):
	}
}

func startWatcher(t *testing.T, dir string, opts Options) *collector {
	t.Helper()
	if opts.Debounce == 0 {
		opts.Debounce = testDebounce
	}
	w, err := NewFileWatcher([]string{dir}, opts)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	c := newCollector()
	require.NoError(t, w.Start(context.Background(), c.callback))

	// Wait for watcher to initialize
	time.Sleep(50 * time.Millisecond)
	return c
}

func TestNewFileWatcher_Success(t *testing.T) {
	t.Parallel()

	w, err := NewFileWatcher([]string{t.TempDir()}, Options{})
	require.NoError(t, err)
	require.NotNil(t, w)

	assert.Equal(t, DefaultDebounce, w.(*fileWatcher).debounceTime)
	require.NoError(t, w.Stop())
}

func TestNewFileWatcher_InvalidDirectory(t *testing.T) {
	t.Parallel()

	w, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "nonexistent")}, Options{})
	assert.Error(t, err)
	assert.Nil(t, w)
}

func TestFileWatcher_SingleFileChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := startWatcher(t, dir, Options{Match: tsOnly})

	file := filepath.Join(dir, "a.ts")
	require.NoError(t, os.WriteFile(file, []byte("class A {}"), 0644))

	assert.Equal(t, []string{file}, c.wait(t))
}

func TestFileWatcher_BatchesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := startWatcher(t, dir, Options{Match: tsOnly, Debounce: 200 * time.Millisecond})

	files := []string{
		filepath.Join(dir, "c.ts"),
		filepath.Join(dir, "a.ts"),
		filepath.Join(dir, "b.ts"),
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("class X {}"), 0644))
		time.Sleep(20 * time.Millisecond)
	}

	batch := c.wait(t)
	assert.Equal(t, []string{files[1], files[2], files[0]}, batch)
}

func TestFileWatcher_FileDeleted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "gone.ts")
	require.NoError(t, os.WriteFile(file, []byte("class G {}"), 0644))

	c := startWatcher(t, dir, Options{Match: tsOnly})
	require.NoError(t, os.Remove(file))

	assert.Contains(t, c.wait(t), file)
}

func TestFileWatcher_DirectoryAdded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := startWatcher(t, dir, Options{Match: tsOnly})

	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Give the watcher time to add the new directory
	time.Sleep(100 * time.Millisecond)

	file := filepath.Join(sub, "nested.ts")
	require.NoError(t, os.WriteFile(file, []byte("class N {}"), 0644))

	assert.Contains(t, c.wait(t), file)
}

func TestFileWatcher_MatchFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := startWatcher(t, dir, Options{Match: tsOnly})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# doc"), 0644))
	c.expectNone(t, 3*testDebounce)
}

func TestFileWatcher_SkipDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	skipped := filepath.Join(dir, "node_modules")
	require.NoError(t, os.Mkdir(skipped, 0755))

	c := startWatcher(t, dir, Options{
		Match:   tsOnly,
		SkipDir: func(path string) bool { return filepath.Base(path) == "node_modules" },
	})

	require.NoError(t, os.WriteFile(filepath.Join(skipped, "dep.ts"), []byte("class D {}"), 0644))
	c.expectNone(t, 3*testDebounce)
}

func TestFileWatcher_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewFileWatcher([]string{dir}, Options{Debounce: testDebounce})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	c := newCollector()
	require.NoError(t, w.Start(ctx, c.callback))

	cancel()
	// Stop after cancellation must not hang
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestFileWatcher_ConcurrentStop(t *testing.T) {
	t.Parallel()

	w, err := NewFileWatcher([]string{t.TempDir()}, Options{})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), func([]string) {}))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	wg.Wait()
}

func TestFileWatcher_StopWithoutStart(t *testing.T) {
	t.Parallel()

	w, err := NewFileWatcher([]string{t.TempDir()}, Options{})
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}
