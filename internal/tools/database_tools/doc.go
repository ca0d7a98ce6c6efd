// Package database_tools provides MCP tools for whole-database reads:
// database_dump and database_summary. Both are available in read-only
// mode.
package database_tools
