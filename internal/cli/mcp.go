package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/class-outline/internal/generate"
	"github.com/mvp-joe/class-outline/internal/mcp"
	"github.com/mvp-joe/class-outline/internal/notify"
	"github.com/mvp-joe/class-outline/internal/scan"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for README generation",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
generate or preview the class overview of the workspace.

The MCP server:
- Provides the outline_generate tool (writes the README, returns a summary)
- Provides the outline_preview tool (returns the README text only)
- Communicates via stdio (standard MCP transport)

Example:
  outline mcp --root /path/to/project`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return fmt.Errorf("%w: %v", generate.ErrNoWorkspace, err)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	// stdout carries the protocol, everything else goes to stderr
	fmt.Fprintln(os.Stderr, "Outline MCP Server")
	fmt.Fprintf(os.Stderr, "Workspace: %s\n\n", root)

	cache, err := scan.NewExtractionCache(cfg.Scan.CacheCapacity)
	if err != nil {
		return err
	}
	defer cache.Close()

	gen := generate.New(generate.Options{
		RootDir:  root,
		Config:   cfg,
		Notifier: notify.NewConsole(os.Stderr, os.Stderr, false),
		Cache:    cache,
	})

	server, err := mcp.NewMCPServer(gen)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
