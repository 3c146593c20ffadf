package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrNotText indicates a file whose content is not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// Reader reads the full text of a file.
type Reader interface {
	ReadFile(ctx context.Context, path string) (string, error)
}

// OSReader reads files from the local filesystem.
type OSReader struct{}

// ReadFile returns the content of path, failing with ErrNotText when the
// content cannot be decoded as UTF-8.
func (OSReader) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotText, path)
	}
	return string(data), nil
}
