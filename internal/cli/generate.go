package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/class-outline/internal/config"
	"github.com/mvp-joe/class-outline/internal/generate"
	"github.com/mvp-joe/class-outline/internal/notify"
	"github.com/mvp-joe/class-outline/internal/scan"
	"github.com/mvp-joe/class-outline/internal/watcher"
)

var (
	quietFlag  bool
	watchFlag  bool
	outputFlag string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate README.md listing the classes and methods in the workspace",
	Long: `Generate scans the workspace and writes a project overview listing every
class declaration and the methods found in its body.

By default it scans **/*.{ts,js,tsx,jsx,java,py,cs}, skips node_modules, and
writes README.md at the workspace root. Files that cannot be read are logged
and skipped.

Examples:
  # Generate README.md for the current directory
  outline generate

  # Generate for another workspace into a different file
  outline generate --root ../app --output docs/CLASSES.md

  # Regenerate whenever a source file changes
  outline generate --watch
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress and success output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file, relative to the root (overrides output.file)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	notifier := notify.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), quietFlag)

	root, err := resolveRoot()
	if err != nil {
		notifier.Error("No workspace folder open")
		return fmt.Errorf("%w: %v", generate.ErrNoWorkspace, err)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if outputFlag != "" {
		cfg.Output.File = outputFlag
	}

	var cache *scan.ExtractionCache
	if watchFlag {
		cache, err = scan.NewExtractionCache(cfg.Scan.CacheCapacity)
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	var progress generate.ProgressReporter = &generate.NoOpProgressReporter{}
	if !quietFlag {
		progress = NewCLIProgressReporter(cmd.ErrOrStderr())
	}

	gen := generate.New(generate.Options{
		RootDir:  root,
		Config:   cfg,
		Notifier: notifier,
		Progress: progress,
		Cache:    cache,
	})

	result, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	if verbose {
		printResult(cmd.OutOrStdout(), result)
	}

	if !watchFlag {
		return nil
	}
	return watchAndRegenerate(ctx, gen, cfg, cache, cmd.OutOrStdout())
}

// watchAndRegenerate reruns the generator after each debounced batch of source
// changes until ctx is cancelled.
func watchAndRegenerate(ctx context.Context, gen *generate.Generator, cfg *config.Config, cache *scan.ExtractionCache, out io.Writer) error {
	fd, err := gen.Discovery()
	if err != nil {
		return err
	}
	outputPath := gen.OutputPath()

	w, err := watcher.NewFileWatcher([]string{gen.RootDir()}, watcher.Options{
		Debounce: cfg.Watch.Debounce(),
		Match: func(path string) bool {
			return path != outputPath && fd.Matches(path)
		},
		SkipDir: fd.ShouldSkipDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Stop()

	err = w.Start(ctx, func(files []string) {
		log.Printf("Detected %d changed file(s), regenerating...", len(files))
		result, err := gen.Run(ctx)
		if err != nil {
			log.Printf("Regeneration failed: %v", err)
			return
		}
		if verbose {
			printResult(out, result)
			fmt.Fprintf(out, "  Cached:  %d files\n", cache.Len())
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	fmt.Fprintf(out, "Watching %s for changes to %s files (Ctrl+C to stop)...\n",
		gen.RootDir(), strings.Join(fd.Extensions(), ", "))
	<-ctx.Done()
	fmt.Fprintln(out, "\nStopping watcher...")
	return nil
}

func printResult(out io.Writer, result *generate.Result) {
	fmt.Fprintf(out, "  Run:     %s\n", result.RunID)
	fmt.Fprintf(out, "  Output:  %s\n", result.OutputPath)
	fmt.Fprintf(out, "  Files:   %d scanned, %d failed\n", result.FilesScanned, len(result.FilesFailed))
	fmt.Fprintf(out, "  Classes: %d\n", len(result.Classes))
	for _, path := range result.FilesFailed {
		fmt.Fprintf(out, "  ! %s\n", path)
	}
}
