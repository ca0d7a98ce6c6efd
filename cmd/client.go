package cmd

import (
	"context"
	"encoding/json"
	"os"

	"omnibridge/internal/config"
	"omnibridge/internal/omnifocus"
)

// newOmniFocusClient builds a client for CLI commands using the configured
// osascript timeout.
func newOmniFocusClient(ctx context.Context) (*omnifocus.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return omnifocus.New(ctx, omnifocus.WithTimeout(cfg.Timeout()))
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
