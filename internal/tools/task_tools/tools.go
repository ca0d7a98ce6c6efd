package task_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"omnibridge/internal/instrumentation"
	"omnibridge/internal/omnifocus"
	"omnibridge/internal/script"
	"omnibridge/internal/server"
	"omnibridge/internal/tools/batch"
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

// parseTags splits a comma-separated list of tag names
func parseTags(tagsStr string) []string {
	if tagsStr == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(tagsStr, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseRepetition builds a repetition rule from the repeatEvery/repeatUnit/
// repeatMethod arguments. Returns nil when no repetition was requested.
func parseRepetition(args map[string]interface{}) (*script.RepetitionRule, error) {
	unitStr, _ := args["repeatUnit"].(string)
	if unitStr == "" {
		return nil, nil
	}

	unit, err := script.ParseRepetitionUnit(unitStr)
	if err != nil {
		return nil, err
	}

	steps := 1
	if every, ok := args["repeatEvery"].(float64); ok && every > 0 {
		steps = int(every)
	}

	rule := &script.RepetitionRule{Unit: unit, Steps: steps}

	if methodStr, ok := args["repeatMethod"].(string); ok && methodStr != "" {
		method, err := script.ParseRepetitionMethod(methodStr)
		if err != nil {
			return nil, err
		}
		rule.Method = method
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

// parseTaskInput extracts the shared task attribute arguments used by the
// add and edit tools
func parseTaskInput(args map[string]interface{}) (omnifocus.TaskInput, error) {
	input := omnifocus.TaskInput{}

	if name, ok := args["name"].(string); ok {
		input.Name = name
	}
	if note, ok := args["note"].(string); ok {
		input.Note = note
	}
	if project, ok := args["project"].(string); ok {
		input.ProjectName = project
	}
	if parentID, ok := args["parentId"].(string); ok {
		input.ParentID = parentID
	}
	if tagsStr, ok := args["tags"].(string); ok {
		input.Tags = parseTags(tagsStr)
	}
	if flagged, ok := args["flagged"].(bool); ok {
		input.Flagged = flagged
		input.FlaggedSet = true
	}
	if estimate, ok := args["estimatedMinutes"].(float64); ok && estimate > 0 {
		input.EstimatedMinutes = int(estimate)
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

	repetition, err := parseRepetition(args)
	if err != nil {
		return input, err
	}
	input.Repetition = repetition

	return input, nil
}

// taskInputFromItem converts a validated batch item document into a TaskInput
func taskInputFromItem(item map[string]interface{}) (omnifocus.TaskInput, error) {
	// Batch items carry tags as a JSON array rather than a comma list, so
	// the names are taken as-is and may themselves contain commas
	rawTags, isArray := item["tags"].([]interface{})
	if isArray {
		item = cloneItem(item)
		delete(item, "tags")
	}

	input, err := parseTaskInput(item)
	if err != nil {
		return input, err
	}
	if isArray {
		names := make([]string, 0, len(rawTags))
		for _, t := range rawTags {
			if s, ok := t.(string); ok {
				names = append(names, s)
			}
		}
		input.Tags = names
	}
	return input, nil
}

func cloneItem(item map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(item))
	for k, v := range item {
		clone[k] = v
	}
	return clone
}

// RegisterTaskTools registers all task-related tools with the MCP server.
// Write tools are only registered when readOnly is false.
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerTaskReadTools(s, sc)

	if !readOnly {
		registerTaskWriteTools(s, sc)
	}

	return nil
}

// registerTaskReadTools registers the read-only task tools
func registerTaskReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listTasksTool := mcp.NewTool("tasks_list",
		mcp.WithDescription("List tasks with optional filters"),
		mcp.WithBoolean("inbox",
			mcp.Description("Only return inbox tasks"),
		),
		mcp.WithBoolean("flagged",
			mcp.Description("Only return flagged tasks"),
		),
		mcp.WithBoolean("available",
			mcp.Description("Only return available tasks (skip completed, dropped, and blocked)"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Include completed tasks (excluded by default)"),
		),
		mcp.WithString("project",
			mcp.Description("Only return tasks in the project with this name"),
		),
		mcp.WithString("tag",
			mcp.Description("Only return tasks carrying the tag with this name"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring match on task name and note"),
		),
		mcp.WithString("dueBefore",
			mcp.Description("Only return tasks due before this date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("dueAfter",
			mcp.Description("Only return tasks due after this date (RFC3339 or YYYY-MM-DD)"),
		),
	)

	s.AddTool(listTasksTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_list", instrumentation.EntityTask, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTasks(request, sc)
		}))

	getTasksTool := mcp.NewTool("tasks_get",
		mcp.WithDescription("Get details of one or more tasks by ID"),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to retrieve"),
		),
	)

	s.AddTool(getTasksTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_get", instrumentation.EntityTask, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTasks(request, sc)
		}))
}

// registerTaskWriteTools registers the task tools that mutate the database
func registerTaskWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addTaskTool := mcp.NewTool("tasks_add",
		mcp.WithDescription("Add a new task to the inbox, a project, or as a subtask"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Task name"),
		),
		mcp.WithString("note",
			mcp.Description("Task note"),
		),
		mcp.WithString("project",
			mcp.Description("Project name to add the task to (default: inbox)"),
		),
		mcp.WithString("parentId",
			mcp.Description("Parent task ID to create a subtask under"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tag names; missing tags are created"),
		),
		mcp.WithBoolean("flagged",
			mcp.Description("Flag the task"),
		),
		mcp.WithString("due",
			mcp.Description("Due date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("defer",
			mcp.Description("Defer date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithNumber("estimatedMinutes",
			mcp.Description("Estimated duration in minutes"),
		),
		mcp.WithNumber("repeatEvery",
			mcp.Description("Repetition interval (used with repeatUnit, default 1)"),
		),
		mcp.WithString("repeatUnit",
			mcp.Description("Repetition unit: minutes, hours, days, weeks, months, or years"),
		),
		mcp.WithString("repeatMethod",
			mcp.Description("Repetition method: fixed (default), start-after-completion, or due-after-completion"),
		),
	)

	s.AddTool(addTaskTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_add", instrumentation.EntityTask, instrumentation.OperationAdd, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddTask(request, sc)
		}))

	addBatchTool := mcp.NewTool("tasks_add_batch",
		mcp.WithDescription("Add multiple tasks in one call. Items are validated before any task is created."),
		mcp.WithString("items",
			mcp.Required(),
			mcp.Description(`JSON array of task objects, e.g. [{"name": "Buy milk", "project": "Errands", "flagged": true}]. Allowed keys: name (required), note, project, parentId, tags (array), flagged, due, defer, estimatedMinutes.`),
		),
	)

	s.AddTool(addBatchTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_add_batch", instrumentation.EntityTask, instrumentation.OperationAdd, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddTaskBatch(request, sc)
		}))

	editTaskTool := mcp.NewTool("tasks_edit",
		mcp.WithDescription("Edit an existing task. Only the provided attributes change."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the task to edit"),
		),
		mcp.WithString("name",
			mcp.Description("New task name"),
		),
		mcp.WithString("note",
			mcp.Description("New task note"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tag names replacing the current tags"),
		),
		mcp.WithBoolean("flagged",
			mcp.Description("New flagged state"),
		),
		mcp.WithString("due",
			mcp.Description("New due date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithString("defer",
			mcp.Description("New defer date (RFC3339 or YYYY-MM-DD)"),
		),
		mcp.WithNumber("estimatedMinutes",
			mcp.Description("New estimated duration in minutes"),
		),
		mcp.WithNumber("repeatEvery",
			mcp.Description("Repetition interval (used with repeatUnit)"),
		),
		mcp.WithString("repeatUnit",
			mcp.Description("Repetition unit: minutes, hours, days, weeks, months, or years"),
		),
		mcp.WithString("repeatMethod",
			mcp.Description("Repetition method: fixed, start-after-completion, or due-after-completion"),
		),
		mcp.WithBoolean("clearDue",
			mcp.Description("Remove the due date"),
		),
		mcp.WithBoolean("clearDefer",
			mcp.Description("Remove the defer date"),
		),
		mcp.WithBoolean("clearRepetition",
			mcp.Description("Remove the repetition rule"),
		),
	)

	s.AddTool(editTaskTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_edit", instrumentation.EntityTask, instrumentation.OperationEdit, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleEditTask(request, sc)
		}))

	completeTasksTool := mcp.NewTool("tasks_complete",
		mcp.WithDescription("Mark one or more tasks as completed"),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to complete"),
		),
	)

	s.AddTool(completeTasksTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_complete", instrumentation.EntityTask, instrumentation.OperationComplete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCompleteTasks(request, sc)
		}))

	removeTasksTool := mcp.NewTool("tasks_remove",
		mcp.WithDescription("Delete one or more tasks"),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to delete"),
		),
	)

	s.AddTool(removeTasksTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_remove", instrumentation.EntityTask, instrumentation.OperationRemove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemoveTasks(request, sc)
		}))

	moveTaskTool := mcp.NewTool("tasks_move",
		mcp.WithDescription("Move a task to a project or under a parent task"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the task to move"),
		),
		mcp.WithString("project",
			mcp.Description("Destination project name"),
		),
		mcp.WithString("parentId",
			mcp.Description("Destination parent task ID"),
		),
	)

	s.AddTool(moveTaskTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_move", instrumentation.EntityTask, instrumentation.OperationMove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMoveTask(request, sc)
		}))

	duplicateTaskTool := mcp.NewTool("tasks_duplicate",
		mcp.WithDescription("Duplicate a task one or more times"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the task to duplicate"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of copies to create (default: 1)"),
		),
	)

	s.AddTool(duplicateTaskTool, common.InstrumentedToolHandlerWithEntity(
		"tasks_duplicate", instrumentation.EntityTask, instrumentation.OperationDuplicate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDuplicateTask(request, sc)
		}))
}

func handleListTasks(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	filter := omnifocus.TaskFilter{}
	if inbox, ok := args["inbox"].(bool); ok {
		filter.Inbox = inbox
	}
	if flagged, ok := args["flagged"].(bool); ok {
		filter.Flagged = flagged
	}
	if available, ok := args["available"].(bool); ok {
		filter.Available = available
	}
	if completed, ok := args["completed"].(bool); ok {
		filter.Completed = completed
	}
	if project, ok := args["project"].(string); ok {
		filter.ProjectName = project
	}
	if tag, ok := args["tag"].(string); ok {
		filter.TagName = tag
	}
	if search, ok := args["search"].(string); ok {
		filter.Search = search
	}
	if dueBefore, ok := args["dueBefore"].(string); ok && dueBefore != "" {
		t, err := omnifocus.ParseDate(dueBefore)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("dueBefore: %v", err)), nil
		}
		filter.DueBefore = t
	}
	if dueAfter, ok := args["dueAfter"].(string); ok && dueAfter != "" {
		t, err := omnifocus.ParseDate(dueAfter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("dueAfter: %v", err)), nil
		}
		filter.DueAfter = t
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tasks, err := client.ListTasks(filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetTasks(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskIDs, err := batch.ParseStringOrArray(args["taskIds"], "taskIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
		task, err := client.GetTask(taskID)
		if err != nil {
			return "", err
		}
		jsonBytes, _ := json.Marshal(task)
		return string(jsonBytes), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleAddTask(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	input, err := parseTaskInput(args)
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

	task, err := client.AddTask(input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add task: %v", err)), nil
	}

	result, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Task created successfully:\n%s", string(result))), nil
}

func handleAddTaskBatch(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	items, err := batch.ParseObjectArray(args["items"], "items")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Validate every item up front so a malformed batch creates nothing
	inputs := make([]omnifocus.TaskInput, 0, len(items))
	for i, item := range items {
		if err := taskItemSchema.Validate(item); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("items[%d]: %v", i, err)), nil
		}
		input, err := taskInputFromItem(item)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("items[%d]: %v", i, err)), nil
		}
		inputs = append(inputs, input)
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := make([]batch.Result, 0, len(inputs))
	for _, input := range inputs {
		task, err := client.AddTask(input)
		if err != nil {
			results = append(results, batch.NewErrorResult(input.Name, err))
			continue
		}
		results = append(results, batch.NewSuccessResult(input.Name, fmt.Sprintf("Task %q created with ID: %s", task.Name, task.ID)))
	}

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleEditTask(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	input, err := parseTaskInput(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if clear, ok := args["clearDue"].(bool); ok {
		input.ClearDueDate = clear
	}
	if clear, ok := args["clearDefer"].(bool); ok {
		input.ClearDeferDate = clear
	}
	if clear, ok := args["clearRepetition"].(bool); ok {
		input.ClearRepetition = clear
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := client.EditTask(id, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to edit task: %v", err)), nil
	}

	result, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Task updated successfully:\n%s", string(result))), nil
}

func handleCompleteTasks(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskIDs, err := batch.ParseStringOrArray(args["taskIds"], "taskIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
		task, err := client.CompleteTask(taskID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Task %s (%s) completed successfully", taskID, task.Name), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleRemoveTasks(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskIDs, err := batch.ParseStringOrArray(args["taskIds"], "taskIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
		if err := client.RemoveTask(taskID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Task %s deleted successfully", taskID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleMoveTask(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	project, _ := args["project"].(string)
	parentID, _ := args["parentId"].(string)

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := client.MoveTask(id, project, parentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to move task: %v", err)), nil
	}

	result, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Task moved successfully:\n%s", string(result))), nil
}

func handleDuplicateTask(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	count := 1
	if c, ok := args["count"].(float64); ok && c > 0 {
		count = int(c)
	}

	client, err := getClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tasks, err := client.DuplicateTask(id, count)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to duplicate task: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Created %d duplicate(s):\n%s", len(tasks), string(result))), nil
}
