package watcher

import "context"

// FileWatcher monitors source files for changes with debouncing.
type FileWatcher interface {
	// Start begins watching, calling callback with each debounced batch of
	// changed files. The callback runs on the watch goroutine, so batches
	// never overlap.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error
}
