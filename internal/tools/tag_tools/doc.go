// Package tag_tools provides MCP tools for OmniFocus tags.
//
// Read tools (tags_list, tags_get) are always registered. Write tools
// (tags_add, tags_rename, tags_remove) require the server to run with
// --yolo.
package tag_tools
