package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists a text document.
type Writer interface {
	Write(ctx context.Context, path, content string) error
}

// FileWriter writes documents to the local filesystem. The content goes to a
// temporary file in the target directory which is then renamed over the
// target, so a failed write never leaves a truncated document behind.
type FileWriter struct {
	// Perm is the mode of the written file; zero means 0644.
	Perm os.FileMode
}

// Write replaces path with content.
func (w FileWriter) Write(ctx context.Context, path, content string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := w.Perm
	if perm == 0 {
		perm = 0644
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
