package perspective_tools

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

// RegisterPerspectiveTools registers perspective tools with the MCP server.
// perspectives_open changes the frontmost window, so it counts as a write
// and is skipped when readOnly is true.
func RegisterPerspectiveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listPerspectivesTool := mcp.NewTool("perspectives_list",
		mcp.WithDescription("List built-in and custom perspectives"),
	)

	s.AddTool(listPerspectivesTool, common.InstrumentedToolHandlerWithEntity(
		"perspectives_list", instrumentation.EntityPerspective, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListPerspectives(request, sc)
		}))

	if readOnly {
		return nil
	}

	openPerspectiveTool := mcp.NewTool("perspectives_open",
		mcp.WithDescription("Switch the frontmost OmniFocus window to the named perspective"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the perspective to open"),
		),
	)

	s.AddTool(openPerspectiveTool, common.InstrumentedToolHandlerWithEntity(
		"perspectives_open", instrumentation.EntityPerspective, instrumentation.OperationOpen, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleOpenPerspective(request, sc)
		}))

	return nil
}

func handleListPerspectives(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	perspectives, err := client.ListPerspectives()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list perspectives: %v", err)), nil
	}

	result, _ := json.MarshalIndent(perspectives, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleOpenPerspective(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	perspective, err := client.OpenPerspective(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open perspective: %v", err)), nil
	}

	result, _ := json.MarshalIndent(perspective, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Perspective opened:\n%s", string(result))), nil
}
