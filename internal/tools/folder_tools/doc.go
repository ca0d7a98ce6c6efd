// Package folder_tools provides MCP tools for OmniFocus folders.
//
// Read tools (folders_list, folders_get) are always registered. Write
// tools (folders_add, folders_rename, folders_move, folders_remove)
// require the server to run with --yolo.
package folder_tools
