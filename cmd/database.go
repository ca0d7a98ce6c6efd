package cmd

import (
	"github.com/spf13/cobra"

	"omnibridge/internal/omnifocus"
)

func newDatabaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "database",
		Short: "Inspect the OmniFocus database as a whole",
	}

	cmd.AddCommand(newDatabaseDumpCmd())
	cmd.AddCommand(newDatabaseSummaryCmd())

	return cmd
}

func newDatabaseDumpCmd() *cobra.Command {
	var (
		includeCompleted bool
		maxDepth         int
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Export the full folder/project/task hierarchy as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			dump, err := client.DumpDatabase(omnifocus.DumpOptions{
				IncludeCompleted: includeCompleted,
				MaxDepth:         maxDepth,
			})
			if err != nil {
				return err
			}
			return printJSON(dump)
		},
	}

	cmd.Flags().BoolVar(&includeCompleted, "include-completed", false, "Include completed and dropped tasks")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Limit the task nesting depth; 0 means unlimited")

	return cmd
}

func newDatabaseSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Report counts of folders, projects, tasks, and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := client.Summary()
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}
}
