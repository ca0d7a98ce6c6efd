package tag_tools

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

// RegisterTagTools registers all tag-related tools with the MCP server.
// Write tools are only registered when readOnly is false.
func RegisterTagTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTagsTool := mcp.NewTool("tags_list",
		mcp.WithDescription("List all tags in the OmniFocus database"),
	)

	s.AddTool(listTagsTool, common.InstrumentedToolHandlerWithEntity(
		"tags_list", instrumentation.EntityTag, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTags(request, sc)
		}))

	getTagTool := mcp.NewTool("tags_get",
		mcp.WithDescription("Get details of a tag by ID"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the tag to retrieve"),
		),
	)

	s.AddTool(getTagTool, common.InstrumentedToolHandlerWithEntity(
		"tags_get", instrumentation.EntityTag, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTag(request, sc)
		}))

	if readOnly {
		return nil
	}

	addTagTool := mcp.NewTool("tags_add",
		mcp.WithDescription("Create a new tag, optionally nested under a parent tag"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Tag name"),
		),
		mcp.WithString("parent",
			mcp.Description("Name of the parent tag to nest under"),
		),
	)

	s.AddTool(addTagTool, common.InstrumentedToolHandlerWithEntity(
		"tags_add", instrumentation.EntityTag, instrumentation.OperationAdd, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddTag(request, sc)
		}))

	renameTagTool := mcp.NewTool("tags_rename",
		mcp.WithDescription("Rename a tag"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the tag to rename"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The new tag name"),
		),
	)

	s.AddTool(renameTagTool, common.InstrumentedToolHandlerWithEntity(
		"tags_rename", instrumentation.EntityTag, instrumentation.OperationRename, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRenameTag(request, sc)
		}))

	removeTagTool := mcp.NewTool("tags_remove",
		mcp.WithDescription("Delete a tag. Tasks carrying the tag keep their other tags."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the tag to delete"),
		),
	)

	s.AddTool(removeTagTool, common.InstrumentedToolHandlerWithEntity(
		"tags_remove", instrumentation.EntityTag, instrumentation.OperationRemove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemoveTag(request, sc)
		}))

	return nil
}

func handleListTags(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tags, err := client.ListTags()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tags, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetTag(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tag, err := client.GetTag(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get tag: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tag, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleAddTag(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	parent, _ := args["parent"].(string)

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tag, err := client.AddTag(name, parent)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add tag: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tag, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Tag created successfully:\n%s", string(result))), nil
}

func handleRenameTag(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tag, err := client.RenameTag(id, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to rename tag: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tag, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Tag renamed successfully:\n%s", string(result))), nil
}

func handleRemoveTag(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.RemoveTag(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove tag: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Tag %s deleted successfully", id)), nil
}
