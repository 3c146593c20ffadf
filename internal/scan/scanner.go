package scan

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/class-outline/internal/outline"
)

// DefaultConcurrency is the number of files read at once.
const DefaultConcurrency = 8

// FileError records a file that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// FileResult is the extraction result for one readable file.
type FileResult struct {
	Path    string
	Classes []outline.ClassInfo
	Cached  bool
}

// Report is the outcome of a scan. Files keeps the order the paths were
// given in, minus the failed ones.
type Report struct {
	Files  []FileResult
	Failed []FileError
}

// PerFile returns each readable file's classes, in file order.
func (r *Report) PerFile() [][]outline.ClassInfo {
	perFile := make([][]outline.ClassInfo, len(r.Files))
	for i, f := range r.Files {
		perFile[i] = f.Classes
	}
	return perFile
}

// Classes aggregates the per-file classes the same way outline.Extract does.
func (r *Report) Classes() []outline.ClassInfo {
	return outline.Aggregate(r.PerFile())
}

// Options configures a Scanner.
type Options struct {
	// Reader defaults to OSReader.
	Reader Reader
	// Concurrency defaults to DefaultConcurrency.
	Concurrency int
	// Cache is optional.
	Cache *ExtractionCache
	// OnFileScanned is called once per path, serialized, in completion order.
	OnFileScanned func(path string)
}

// Scanner reads files and extracts their classes.
type Scanner struct {
	reader        Reader
	concurrency   int
	cache         *ExtractionCache
	onFileScanned func(path string)
	progressMu    sync.Mutex
}

// NewScanner creates a scanner.
func NewScanner(opts Options) *Scanner {
	s := &Scanner{
		reader:        opts.Reader,
		concurrency:   opts.Concurrency,
		cache:         opts.Cache,
		onFileScanned: opts.OnFileScanned,
	}
	if s.reader == nil {
		s.reader = OSReader{}
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultConcurrency
	}
	return s
}

type fileOutcome struct {
	result FileResult
	err    error
}

// Scan reads and extracts every path. Reads run concurrently but the report
// follows the order of paths. A file that fails to read is logged and listed
// in Report.Failed; it never stops the other files. Scan only returns an
// error when ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, paths []string) (*Report, error) {
	outcomes := make([]fileOutcome, len(paths))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = s.scanFile(ctx, path)
			s.reportProgress(path)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Files: make([]FileResult, 0, len(paths)),
	}
	for i, o := range outcomes {
		if o.err != nil {
			log.Printf("Failed to read file %s: %v", paths[i], o.err)
			report.Failed = append(report.Failed, FileError{Path: paths[i], Err: o.err})
			continue
		}
		report.Files = append(report.Files, o.result)
	}

	return report, nil
}

func (s *Scanner) scanFile(ctx context.Context, path string) fileOutcome {
	var key fileKey
	var keyed bool
	if s.cache != nil {
		if key, keyed = keyFor(path); keyed {
			if classes, ok := s.cache.get(key); ok {
				return fileOutcome{result: FileResult{Path: path, Classes: classes, Cached: true}}
			}
		}
	}

	text, err := s.reader.ReadFile(ctx, path)
	if err != nil {
		return fileOutcome{err: err}
	}

	classes := outline.ExtractClasses(text)
	if keyed {
		s.cache.set(key, classes)
	}

	return fileOutcome{result: FileResult{Path: path, Classes: classes}}
}

func (s *Scanner) reportProgress(path string) {
	if s.onFileScanned == nil {
		return
	}
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.onFileScanned(path)
}
