// Package project_tools provides MCP tools for OmniFocus projects.
//
// Read tools (projects_list, projects_get) are always registered. Write
// tools (projects_add, projects_edit, projects_set_status,
// projects_remove) require the server to run with --yolo.
package project_tools
