package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/class-outline/internal/generate"
)

// Runner is the part of generate.Generator the tools need.
type Runner interface {
	Run(ctx context.Context) (*generate.Result, error)
	Preview(ctx context.Context) (*generate.Result, error)
}

// GenerateResponse is the JSON body returned by outline_generate.
type GenerateResponse struct {
	*generate.Result
	Document string `json:"document,omitempty"`
}

// AddGenerateTool registers the outline_generate tool with an MCP server.
func AddGenerateTool(s *server.MCPServer, runner Runner) {
	tool := mcp.NewTool(
		"outline_generate",
		mcp.WithDescription("Scan the workspace for class declarations and their methods and write the project overview README. Returns a JSON summary of the run."),
		mcp.WithBoolean("include_document",
			mcp.Description("Include the rendered README text in the response (default: false)")),
		mcp.WithDestructiveHintAnnotation(true),
	)

	s.AddTool(tool, createGenerateHandler(runner))
}

// AddPreviewTool registers the outline_preview tool with an MCP server.
func AddPreviewTool(s *server.MCPServer, runner Runner) {
	tool := mcp.NewTool(
		"outline_preview",
		mcp.WithDescription("Render the project overview README for the workspace without writing it. Returns the Markdown text."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createPreviewHandler(runner))
}

func createGenerateHandler(runner Runner) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args generateArgs
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result, err := runner.Run(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response := GenerateResponse{Result: result}
		if args.IncludeDocument {
			response.Document = result.Document
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func createPreviewHandler(runner Runner) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := runner.Preview(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result.Document), nil
	}
}
