package project_tools

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

// getClient retrieves the OmniFocus client from the server context
func getClient(sc *server.ServerContext) (*omnifocus.Client, error) {
	client, err := sc.OmniFocusClient()
	if err != nil {
		return nil, fmt.Errorf("OmniFocus automation unavailable: %w", err)
	}
	return client, nil
}

// parseProjectInput extracts the shared project attribute arguments used by
// the add and edit tools
func parseProjectInput(args map[string]interface{}) (omnifocus.ProjectInput, error) {
	input := omnifocus.ProjectInput{}

	if name, ok := args["name"].(string); ok {
		input.Name = name
	}
	if note, ok := args["note"].(string); ok {
		input.Note = note
	}
	if folder, ok := args["folder"].(string); ok {
		input.FolderPath = folder
	}
	if sequential, ok := args["sequential"].(bool); ok {
		input.Sequential = sequential
	}

	if dueStr, ok := args["due"].(string); ok && dueStr != "" {
		due, err := omnifocus.ParseDate(dueStr)
		if err != nil {
			return input, fmt.Errorf("due: %w", err)
		}
		input.DueDate = due
	}
	if deferStr, ok := args["defer"].(string); ok && deferStr != "" {
		deferDate, err := omnifocus.ParseDate(deferStr)
		if err != nil {
			return input, fmt.Errorf("defer: %w", err)
		}
		input.DeferDate = deferDate
	}

	return input, nil
}

// RegisterProjectTools registers all project-related tools with the MCP
// server. Write tools are only registered when readOnly is false.
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listProjectsTool := mcp.NewTool("projects_list",
		mcp.WithDescription("List projects with optional status and folder filters"),
		mcp.WithString("status",
			mcp.Description("Only return projects with this status: active, on-hold, done, or dropped"),
		),
		mcp.WithString("folder",
			mcp.Description("Only return projects directly inside the folder with this name"),
		),
	)

	s.AddTool(listProjectsTool, common.InstrumentedToolHandlerWithEntity(
		"projects_list", instrumentation.EntityProject, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListProjects(request, sc)
		}))

	getProjectTool := mcp.NewTool("projects_get",
		mcp.WithDescription("Get details of a project by ID"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the project to retrieve"),
		),
	)

	s.AddTool(getProjectTool, common.InstrumentedToolHandlerWithEntity(
		"projects_get", instrumentation.EntityProject, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetProject(request, sc)
		}))

	if readOnly {
		return nil
	}

	addProjectTool := mcp.NewTool("projects_add",
		mcp.WithDescription("Create a new project, optionally inside a folder path"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("note",
			mcp.Description("Project note"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder path separated by ' / '; intermediate folders are created"),
		),
		mcp.WithBoolean("sequential",
			mcp.Description("Make tasks in the project sequential"),
		),
		mcp.WithString("due",
			mcp.Description("Due date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("defer",
			mcp.Description("Defer date (RFC3339 or YYYY-MM-DD)"),
		),
	)

	s.AddTool(addProjectTool, common.InstrumentedToolHandlerWithEntity(
		"projects_add", instrumentation.EntityProject, instrumentation.OperationAdd, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddProject(request, sc)
		}))

	editProjectTool := mcp.NewTool("projects_edit",
		mcp.WithDescription("Edit an existing project. Only the provided attributes change."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the project to edit"),
		),
		mcp.WithString("name",
			mcp.Description("New project name"),
		),
		mcp.WithString("note",
			mcp.Description("New project note"),
		),
		mcp.WithString("folder",
			mcp.Description("Move the project into this folder path"),
		),
		mcp.WithString("due",
			mcp.Description("New due date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("defer",
			mcp.Description("New defer date (RFC3339 or YYYY-MM-DD)"),
		),
	)

	s.AddTool(editProjectTool, common.InstrumentedToolHandlerWithEntity(
		"projects_edit", instrumentation.EntityProject, instrumentation.OperationEdit, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleEditProject(request, sc)
		}))

	setStatusTool := mcp.NewTool("projects_set_status",
		mcp.WithDescription("Change a project's status. Setting 'done' completes its remaining tasks."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status: active, on-hold, done, or dropped"),
		),
	)

	s.AddTool(setStatusTool, common.InstrumentedToolHandlerWithEntity(
		"projects_set_status", instrumentation.EntityProject, instrumentation.OperationSetStatus, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSetProjectStatus(request, sc)
		}))

	removeProjectTool := mcp.NewTool("projects_remove",
		mcp.WithDescription("Delete a project and all of its tasks"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the project to delete"),
		),
	)

	s.AddTool(removeProjectTool, common.InstrumentedToolHandlerWithEntity(
		"projects_remove", instrumentation.EntityProject, instrumentation.OperationRemove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemoveProject(request, sc)
		}))

	return nil
}

func handleListProjects(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	filter := omnifocus.ProjectFilter{}
	if status, ok := args["status"].(string); ok {
		filter.Status = status
	}
	if folder, ok := args["folder"].(string); ok {
		filter.FolderName = folder
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	projects, err := client.ListProjects(filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
	}

	result, _ := json.MarshalIndent(projects, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetProject(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := client.GetProject(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get project: %v", err)), nil
	}

	result, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleAddProject(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	input, err := parseProjectInput(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if input.Name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := client.AddProject(input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add project: %v", err)), nil
	}

	result, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Project created successfully:\n%s", string(result))), nil
}

func handleEditProject(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	input, err := parseProjectInput(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := client.EditProject(id, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to edit project: %v", err)), nil
	}

	result, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Project updated successfully:\n%s", string(result))), nil
}

func handleSetProjectStatus(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	status, ok := args["status"].(string)
	if !ok || status == "" {
		return mcp.NewToolResultError("status is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := client.SetProjectStatus(id, status)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to set project status: %v", err)), nil
	}

	result, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Project status updated:\n%s", string(result))), nil
}

func handleRemoveProject(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.RemoveProject(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove project: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Project %s deleted successfully", id)), nil
}
