package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"omnibridge/internal/omnifocus"
)

// projectAttributeFlags holds the flags shared by project add and edit.
type projectAttributeFlags struct {
	note       string
	folder     string
	sequential bool
	due        string
	deferDate  string
}

func (f *projectAttributeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.note, "note", "", "Project note")
	cmd.Flags().StringVar(&f.folder, "folder", "", "Folder path separated by ' / '; intermediate folders are created")
	cmd.Flags().BoolVar(&f.sequential, "sequential", false, "Make tasks in the project sequential")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.deferDate, "defer", "", "Defer date (RFC3339 or YYYY-MM-DD)")
}

func (f *projectAttributeFlags) input() (omnifocus.ProjectInput, error) {
	input := omnifocus.ProjectInput{
		Note:       f.note,
		FolderPath: f.folder,
		Sequential: f.sequential,
	}

	if f.due != "" {
		due, err := omnifocus.ParseDate(f.due)
		if err != nil {
			return input, fmt.Errorf("due: %w", err)
		}
		input.DueDate = due
	}
	if f.deferDate != "" {
		deferDate, err := omnifocus.ParseDate(f.deferDate)
		if err != nil {
			return input, fmt.Errorf("defer: %w", err)
		}
		input.DeferDate = deferDate
	}

	return input, nil
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage OmniFocus projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectGetCmd())
	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectEditCmd())
	cmd.AddCommand(newProjectSetStatusCmd())
	cmd.AddCommand(newProjectRemoveCmd())

	return cmd
}

func newProjectListCmd() *cobra.Command {
	var (
		status string
		folder string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			projects, err := client.ListProjects(omnifocus.ProjectFilter{
				Status:     status,
				FolderName: folder,
			})
			if err != nil {
				return err
			}
			return printJSON(projects)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only projects with this status: active, on-hold, done, or dropped")
	cmd.Flags().StringVar(&folder, "folder", "", "Only projects directly inside this folder")

	return cmd
}

func newProjectGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a project by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			project, err := client.GetProject(args[0])
			if err != nil {
				return err
			}
			return printJSON(project)
		},
	}
}

func newProjectAddCmd() *cobra.Command {
	var attrs projectAttributeFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := attrs.input()
			if err != nil {
				return err
			}
			input.Name = args[0]

			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			project, err := client.AddProject(input)
			if err != nil {
				return err
			}
			return printJSON(project)
		},
	}

	attrs.register(cmd)
	return cmd
}

func newProjectEditCmd() *cobra.Command {
	var (
		attrs projectAttributeFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a project. Only the provided flags change anything.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := attrs.input()
			if err != nil {
				return err
			}
			input.Name = name

			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			project, err := client.EditProject(args[0], input)
			if err != nil {
				return err
			}
			return printJSON(project)
		},
	}

	attrs.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "New project name")

	return cmd
}

func newProjectSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Change a project's status (active, on-hold, done, or dropped)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			project, err := client.SetProjectStatus(args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(project)
		},
	}
}

func newProjectRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.RemoveProject(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted project %s\n", args[0])
			return nil
		},
	}
}
