package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName and ServerVersion identify the server to MCP clients.
const (
	ServerName    = "outline-mcp"
	ServerVersion = "1.0.0"
)

// MCPServer exposes README generation to MCP clients over stdio.
type MCPServer struct {
	mcp *server.MCPServer
}

// NewMCPServer creates a server with the outline tools registered.
func NewMCPServer(runner Runner) (*MCPServer, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner is required")
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	AddGenerateTool(mcpServer, runner)
	AddPreviewTool(mcpServer, runner)

	return &MCPServer{mcp: mcpServer}, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
