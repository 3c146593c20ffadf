package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/class-outline/internal/config"
)

var (
	cfgFile string
	rootDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "outline",
	Short: "Outline - generate a class overview README for a codebase",
	Long: `Outline scans a workspace for class declarations and their methods and
writes a README.md listing them, followed by sections to fill in by hand.

Detection is heuristic: it matches text patterns and counts braces instead of
parsing each language, so it works across TypeScript, JavaScript, Java, C#
and similar languages with a few known false positives.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/.outline/config.yml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "workspace root (default is the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// resolveRoot returns the absolute workspace root.
func resolveRoot() (string, error) {
	if rootDir != "" {
		return filepath.Abs(rootDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// loadConfig loads the workspace configuration, honouring --config.
func loadConfig(root string) (*config.Config, error) {
	var opts []config.LoaderOption
	if cfgFile != "" {
		opts = append(opts, config.WithConfigFile(cfgFile))
	}

	cfg, err := config.NewLoader(root, opts...).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
