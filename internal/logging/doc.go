// Package logging provides structured logging utilities for omnibridge.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Handler construction from the config (level and text/json format)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "task.list")
//	logger.Info("listing tasks",
//	    logging.Status("success"))
//
// Attach the entity a tool operates on:
//
//	logger.Info("tool invoked",
//	    logging.Entity("project"),
//	    logging.Tool("projects_add"))
//
// When the server runs on the stdio transport, logs must go to stderr so
// they never interleave with the protocol stream on stdout.
package logging
