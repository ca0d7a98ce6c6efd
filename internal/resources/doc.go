// Package resources provides MCP resources for exposing OmniFocus data.
// Resources are read-only data sources that MCP clients can fetch without
// invoking a tool, such as the perspective list and database summary.
package resources
