package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrNoIncludePatterns indicates an empty include list
	ErrNoIncludePatterns = errors.New("no include patterns")

	// ErrEmptyOutput indicates a missing output file
	ErrEmptyOutput = errors.New("empty output file")

	// ErrInvalidConcurrency indicates a non-positive scan concurrency
	ErrInvalidConcurrency = errors.New("invalid scan concurrency")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(cfg.Output.File) == "" {
		errs = append(errs, fmt.Errorf("%w: output.file is required", ErrEmptyOutput))
	}

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrNoIncludePatterns))
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	if cfg.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConcurrency, cfg.Concurrency))
	}

	// Zero means the built-in default capacity
	if cfg.CacheCapacity < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_capacity cannot be negative, got %d", ErrInvalidCacheSettings, cfg.CacheCapacity))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The individual errors stay reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{msg: "validation failed:\n  - " + strings.Join(msgs, "\n  - "), errs: errs}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
