// Package task_tools provides MCP tools for managing OmniFocus tasks.
//
// This package implements MCP (Model Context Protocol) tools that wrap the
// OmniFocus automation client, providing task management capabilities for
// AI assistants.
//
// # Available Tools
//
// Read-only (always registered):
//   - tasks_list: List tasks with filters (inbox, flagged, project, tag, ...)
//   - tasks_get: Get details of one or more tasks by ID
//
// Write (registered only when the server runs with --yolo):
//   - tasks_add: Add a task to the inbox, a project, or as a subtask
//   - tasks_add_batch: Add multiple tasks, validated against a JSON Schema
//   - tasks_edit: Edit task attributes, including clearing dates
//   - tasks_complete: Mark one or more tasks as completed
//   - tasks_remove: Delete one or more tasks
//   - tasks_move: Move a task to a project or under a parent task
//   - tasks_duplicate: Duplicate a task one or more times
//
// Batch tools accept either a single ID string or an array of IDs.
package task_tools
