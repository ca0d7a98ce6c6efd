// Package cmd implements the command-line interface for omnibridge.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing OmniFocus tools to AI assistants
//   - task, project, folder, tag, perspective, database: CRUD commands
//     against the OmniFocus database, printing JSON to stdout
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
