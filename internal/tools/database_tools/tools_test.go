package database_tools

import (
	"context"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"omnibridge/internal/omnifocus"
	"omnibridge/internal/server"
)

func TestRegisterDatabaseTools(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
	}{
		{name: "read-only registration", readOnly: true},
		{name: "full registration", readOnly: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mcpserver.NewMCPServer("test", "0.0.1")
			sc := server.NewServerContext(context.Background(), tt.readOnly, time.Second)
			defer sc.Shutdown()
			sc.SetOmniFocusClient(&omnifocus.Client{})

			if err := RegisterDatabaseTools(s, sc, tt.readOnly); err != nil {
				t.Fatalf("Expected registration to succeed, got %v", err)
			}
		})
	}
}
