package database_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"omnibridge/internal/instrumentation"
	"omnibridge/internal/omnifocus"
	"omnibridge/internal/server"
	"omnibridge/internal/tools/common"
)

func getClient(sc *server.ServerContext) (*omnifocus.Client, error) {
	client, err := sc.OmniFocusClient()
	if err != nil {
		return nil, fmt.Errorf("OmniFocus automation unavailable: %w", err)
	}
	return client, nil
}

// RegisterDatabaseTools registers whole-database tools with the MCP server.
// Both tools are read-only, so readOnly does not gate anything here.
func RegisterDatabaseTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	dumpTool := mcp.NewTool("database_dump",
		mcp.WithDescription("Export the full folder/project/task hierarchy as JSON"),
		mcp.WithBoolean("includeCompleted",
			mcp.Description("Include completed and dropped tasks in the dump"),
		),
		mcp.WithNumber("maxDepth",
			mcp.Description("Limit the task nesting depth; 0 means unlimited"),
		),
	)

	s.AddTool(dumpTool, common.InstrumentedToolHandlerWithEntity(
		"database_dump", instrumentation.EntityDatabase, instrumentation.OperationDump, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDumpDatabase(request, sc)
		}))

	summaryTool := mcp.NewTool("database_summary",
		mcp.WithDescription("Report counts of folders, projects, tasks, and tags"),
	)

	s.AddTool(summaryTool, common.InstrumentedToolHandlerWithEntity(
		"database_summary", instrumentation.EntityDatabase, instrumentation.OperationSummary, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSummary(request, sc)
		}))

	return nil
}

func handleDumpDatabase(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	opts := omnifocus.DumpOptions{}
	if includeCompleted, ok := args["includeCompleted"].(bool); ok {
		opts.IncludeCompleted = includeCompleted
	}
	if maxDepth, ok := args["maxDepth"].(float64); ok {
		if maxDepth < 0 {
			return mcp.NewToolResultError("maxDepth must not be negative"), nil
		}
		opts.MaxDepth = int(maxDepth)
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dump, err := client.DumpDatabase(opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to dump database: %v", err)), nil
	}

	result, _ := json.MarshalIndent(dump, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleSummary(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := client.Summary()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to summarize database: %v", err)), nil
	}

	result, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
