package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"omnibridge/internal/server"
)

// RegisterOmniFocusResources registers read-only MCP resources backed by the
// OmniFocus database. Resources complement the tools: clients that only want
// to browse can read these without invoking a tool.
func RegisterOmniFocusResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	perspectivesResource := mcp.NewResource(
		"omnifocus://perspectives",
		"OmniFocus Perspectives",
		mcp.WithResourceDescription("All built-in and custom perspectives in OmniFocus"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(perspectivesResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handlePerspectives(request, sc)
	})

	summaryResource := mcp.NewResource(
		"omnifocus://database/summary",
		"OmniFocus Database Summary",
		mcp.WithResourceDescription("Application version and object counts for the OmniFocus database"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(summaryResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleSummary(request, sc)
	})

	return nil
}

// handlePerspectives returns the perspective list as a JSON resource
func handlePerspectives(request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, err := sc.OmniFocusClient()
	if err != nil {
		return nil, fmt.Errorf("OmniFocus client unavailable: %w", err)
	}

	perspectives, err := client.ListPerspectives()
	if err != nil {
		return nil, fmt.Errorf("failed to list perspectives: %w", err)
	}

	jsonData, err := json.MarshalIndent(perspectives, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal perspectives: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleSummary returns database counts as a JSON resource
func handleSummary(request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, err := sc.OmniFocusClient()
	if err != nil {
		return nil, fmt.Errorf("OmniFocus client unavailable: %w", err)
	}

	summary, err := client.Summary()
	if err != nil {
		return nil, fmt.Errorf("failed to get database summary: %w", err)
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
