package generate

// Implementation Plan:
// 1. Reject a missing workspace root before touching any file
// 2. Discover files with the configured include/ignore globs
// 3. Scan (read + extract) with isolated per-file failures
// 4. Render the document and write it atomically
// 5. Notify the operator of success or failure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mvp-joe/class-outline/internal/config"
	"github.com/mvp-joe/class-outline/internal/discovery"
	"github.com/mvp-joe/class-outline/internal/notify"
	"github.com/mvp-joe/class-outline/internal/outline"
	"github.com/mvp-joe/class-outline/internal/output"
	"github.com/mvp-joe/class-outline/internal/scan"
)

// ErrNoWorkspace indicates that no usable workspace root was given.
var ErrNoWorkspace = errors.New("no workspace folder open")

// Result describes one generation run.
type Result struct {
	RunID        string              `json:"run_id"`
	OutputPath   string              `json:"output_path,omitempty"`
	FilesScanned int                 `json:"files_scanned"`
	FilesFailed  []string            `json:"files_failed,omitempty"`
	Classes      []outline.ClassInfo `json:"classes"`
	Document     string              `json:"-"`
}

// Options configures a Generator. Only RootDir is required.
type Options struct {
	RootDir  string
	Config   *config.Config
	Reader   scan.Reader
	Writer   output.Writer
	Notifier notify.Notifier
	Progress ProgressReporter
	// Cache keeps extraction results between runs; optional.
	Cache *scan.ExtractionCache
}

// Generator produces the class overview document for a workspace.
type Generator struct {
	rootDir  string
	config   *config.Config
	reader   scan.Reader
	writer   output.Writer
	notifier notify.Notifier
	progress ProgressReporter
	cache    *scan.ExtractionCache
}

// New creates a generator, filling unset options with defaults.
func New(opts Options) *Generator {
	g := &Generator{
		rootDir:  opts.RootDir,
		config:   opts.Config,
		reader:   opts.Reader,
		writer:   opts.Writer,
		notifier: opts.Notifier,
		progress: opts.Progress,
		cache:    opts.Cache,
	}
	if g.config == nil {
		g.config = config.Default()
	}
	if g.reader == nil {
		g.reader = scan.OSReader{}
	}
	if g.writer == nil {
		g.writer = output.FileWriter{}
	}
	if g.notifier == nil {
		g.notifier = &notify.Recorder{}
	}
	if g.progress == nil {
		g.progress = &NoOpProgressReporter{}
	}
	return g
}

// RootDir returns the workspace root.
func (g *Generator) RootDir() string {
	return g.rootDir
}

// OutputPath returns where Run writes the document.
func (g *Generator) OutputPath() string {
	if filepath.IsAbs(g.config.Output.File) {
		return g.config.Output.File
	}
	return filepath.Join(g.rootDir, g.config.Output.File)
}

// Discovery builds the file discovery used by Run.
func (g *Generator) Discovery() (*discovery.FileDiscovery, error) {
	return discovery.NewFileDiscovery(g.rootDir, g.config.Paths.Include, g.config.Paths.Ignore)
}

// Run scans the workspace, renders the overview and writes it to the output
// file. Unreadable files are skipped. A missing workspace or a failed write
// is reported through the notifier and returned; nothing is retried.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	result, err := g.build(ctx)
	if err != nil {
		return nil, err
	}

	outputPath := g.OutputPath()
	name := filepath.Base(outputPath)
	if err := g.writer.Write(ctx, outputPath, result.Document); err != nil {
		g.notifier.Error(fmt.Sprintf("Failed to write %s: %v", name, err))
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}

	result.OutputPath = outputPath
	g.notifier.Info(fmt.Sprintf("%s generated successfully!", name))

	return result, nil
}

// Preview does everything Run does except writing the document.
func (g *Generator) Preview(ctx context.Context) (*Result, error) {
	return g.build(ctx)
}

func (g *Generator) build(ctx context.Context) (*Result, error) {
	if err := g.checkWorkspace(); err != nil {
		g.notifier.Error("No workspace folder open")
		return nil, err
	}

	fd, err := g.Discovery()
	if err != nil {
		g.notifier.Error(fmt.Sprintf("Invalid file patterns: %v", err))
		return nil, err
	}

	g.progress.OnDiscoveryStart()
	paths, err := fd.DiscoverFiles(ctx)
	if err != nil {
		g.notifier.Error(fmt.Sprintf("Failed to list workspace files: %v", err))
		return nil, err
	}
	g.progress.OnDiscoveryComplete(len(paths))

	scanner := scan.NewScanner(scan.Options{
		Reader:        g.reader,
		Concurrency:   g.config.Scan.Concurrency,
		Cache:         g.cache,
		OnFileScanned: g.progress.OnFileScanned,
	})
	report, err := scanner.Scan(ctx, paths)
	if err != nil {
		return nil, err
	}

	classes := report.Classes()
	g.progress.OnScanComplete(len(classes), len(report.Failed))

	result := &Result{
		RunID:        uuid.New().String(),
		FilesScanned: len(report.Files),
		Classes:      classes,
		Document:     outline.Render(classes),
	}
	for _, f := range report.Failed {
		result.FilesFailed = append(result.FilesFailed, f.Path)
	}
	if result.Classes == nil {
		result.Classes = []outline.ClassInfo{}
	}

	return result, nil
}

func (g *Generator) checkWorkspace() error {
	if g.rootDir == "" {
		return ErrNoWorkspace
	}
	info, err := os.Stat(g.rootDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoWorkspace, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoWorkspace, g.rootDir)
	}
	return nil
}
