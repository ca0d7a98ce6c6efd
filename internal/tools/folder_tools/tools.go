package folder_tools

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

// RegisterFolderTools registers all folder-related tools with the MCP server.
// Write tools are only registered when readOnly is false.
func RegisterFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listFoldersTool := mcp.NewTool("folders_list",
		mcp.WithDescription("List all folders in the OmniFocus database"),
	)

	s.AddTool(listFoldersTool, common.InstrumentedToolHandlerWithEntity(
		"folders_list", instrumentation.EntityFolder, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListFolders(request, sc)
		}))

	getFolderTool := mcp.NewTool("folders_get",
		mcp.WithDescription("Get details of a folder by ID"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the folder to retrieve"),
		),
	)

	s.AddTool(getFolderTool, common.InstrumentedToolHandlerWithEntity(
		"folders_get", instrumentation.EntityFolder, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetFolder(request, sc)
		}))

	if readOnly {
		return nil
	}

	addFolderTool := mcp.NewTool("folders_add",
		mcp.WithDescription("Create a new folder, optionally inside a parent folder path"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Folder name"),
		),
		mcp.WithString("parent",
			mcp.Description("Parent folder path separated by ' / '; intermediate folders are created"),
		),
	)

	s.AddTool(addFolderTool, common.InstrumentedToolHandlerWithEntity(
		"folders_add", instrumentation.EntityFolder, instrumentation.OperationAdd, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddFolder(request, sc)
		}))

	renameFolderTool := mcp.NewTool("folders_rename",
		mcp.WithDescription("Rename a folder"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the folder to rename"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The new folder name"),
		),
	)

	s.AddTool(renameFolderTool, common.InstrumentedToolHandlerWithEntity(
		"folders_rename", instrumentation.EntityFolder, instrumentation.OperationRename, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRenameFolder(request, sc)
		}))

	moveFolderTool := mcp.NewTool("folders_move",
		mcp.WithDescription("Move a folder under another folder path, or to the top level"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the folder to move"),
		),
		mcp.WithString("parent",
			mcp.Description("Destination folder path; empty moves the folder to the top level"),
		),
	)

	s.AddTool(moveFolderTool, common.InstrumentedToolHandlerWithEntity(
		"folders_move", instrumentation.EntityFolder, instrumentation.OperationMove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMoveFolder(request, sc)
		}))

	removeFolderTool := mcp.NewTool("folders_remove",
		mcp.WithDescription("Delete a folder and everything inside it"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the folder to delete"),
		),
	)

	s.AddTool(removeFolderTool, common.InstrumentedToolHandlerWithEntity(
		"folders_remove", instrumentation.EntityFolder, instrumentation.OperationRemove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemoveFolder(request, sc)
		}))

	return nil
}

func handleListFolders(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folders, err := client.ListFolders()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list folders: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folders, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetFolder(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folder, err := client.GetFolder(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folder, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleAddFolder(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	folder, err := client.AddFolder(name, parent)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folder, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Folder created successfully:\n%s", string(result))), nil
}

func handleRenameFolder(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	folder, err := client.RenameFolder(id, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to rename folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folder, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Folder renamed successfully:\n%s", string(result))), nil
}

func handleMoveFolder(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	parent, _ := args["parent"].(string)

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folder, err := client.MoveFolder(id, parent)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to move folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folder, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Folder moved successfully:\n%s", string(result))), nil
}

func handleRemoveFolder(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.RemoveFolder(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove folder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Folder %s deleted successfully", id)), nil
}
