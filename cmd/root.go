package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the omnibridge application
var rootCmd = &cobra.Command{
	Use:   "omnibridge",
	Short: "CRUD bridge for the OmniFocus database",
	Long: `omnibridge reads and writes the OmniFocus database through the OmniJS
automation interface, driven via osascript.

It can run as:
  - An MCP (Model Context Protocol) server for AI assistants (default)
  - A standalone CLI for tasks, projects, folders, tags, and perspectives`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "omnibridge version %s\n" .Version}}`)

	// If no subcommand is provided, run the MCP server by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTaskCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newFolderCmd())
	rootCmd.AddCommand(newTagCmd())
	rootCmd.AddCommand(newPerspectiveCmd())
	rootCmd.AddCommand(newDatabaseCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
