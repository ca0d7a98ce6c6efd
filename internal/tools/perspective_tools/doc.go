// Package perspective_tools provides MCP tools for OmniFocus perspectives.
//
// perspectives_list is always registered. perspectives_open switches the
// frontmost window and requires the server to run with --yolo.
package perspective_tools
