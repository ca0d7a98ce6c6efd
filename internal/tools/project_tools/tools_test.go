package project_tools

import (
	"context"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"omnibridge/internal/omnifocus"
	"omnibridge/internal/server"
)

func TestParseProjectInput(t *testing.T) {
	args := map[string]interface{}{
		"name":       "Kitchen remodel",
		"note":       "Budget TBD",
		"folder":     "Home / Renovation",
		"sequential": true,
		"due":        "2026-10-01",
		"defer":      "2026-09-01T08:00",
	}

	input, err := parseProjectInput(args)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if input.Name != "Kitchen remodel" {
		t.Errorf("Expected name 'Kitchen remodel', got %q", input.Name)
	}
	if input.Note != "Budget TBD" {
		t.Errorf("Expected note 'Budget TBD', got %q", input.Note)
	}
	if input.FolderPath != "Home / Renovation" {
		t.Errorf("Expected folder path 'Home / Renovation', got %q", input.FolderPath)
	}
	if !input.Sequential {
		t.Error("Expected sequential to be true")
	}

	wantDue := time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)
	if !input.DueDate.Equal(wantDue) {
		t.Errorf("Expected due %v, got %v", wantDue, input.DueDate)
	}
	wantDefer := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	if !input.DeferDate.Equal(wantDefer) {
		t.Errorf("Expected defer %v, got %v", wantDefer, input.DeferDate)
	}
}

func TestParseProjectInput_Empty(t *testing.T) {
	input, err := parseProjectInput(map[string]interface{}{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if input.Name != "" || !input.DueDate.IsZero() || !input.DeferDate.IsZero() {
		t.Errorf("Expected zero input, got %+v", input)
	}
}

func TestParseProjectInput_BadDate(t *testing.T) {
	_, err := parseProjectInput(map[string]interface{}{
		"name": "Trip",
		"due":  "next week",
	})
	if err == nil {
		t.Fatal("Expected error for unparseable due date")
	}
}

func TestRegisterProjectTools(t *testing.T) {
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

			if err := RegisterProjectTools(s, sc, tt.readOnly); err != nil {
				t.Fatalf("Expected registration to succeed, got %v", err)
			}
		})
	}
}
