// Package batch provides common utilities for batch operations across all MCP tools.
//
// This package includes helpers for:
//   - Parsing parameters that accept both single values and arrays
//   - Formatting batch results in a consistent structure
//   - Validating structured batch items against a JSON Schema
//   - Processing batch operations against the OmniFocus database
//   - Handling partial failures in batch operations
package batch
