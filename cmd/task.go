package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"omnibridge/internal/omnifocus"
	"omnibridge/internal/script"
)

// taskAttributeFlags holds the flags shared by task add and task edit.
type taskAttributeFlags struct {
	note         string
	project      string
	parent       string
	tags         string
	due          string
	deferDate    string
	flagged      bool
	estimate     int
	repeatEvery  int
	repeatUnit   string
	repeatMethod string
}

func (f *taskAttributeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.note, "note", "", "Task note")
	cmd.Flags().StringVar(&f.project, "project", "", "Project to place the task in (by name)")
	cmd.Flags().StringVar(&f.parent, "parent", "", "Parent task ID for subtask creation")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma-separated tag names")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.deferDate, "defer", "", "Defer date (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.flagged, "flagged", false, "Flag the task")
	cmd.Flags().IntVar(&f.estimate, "estimate", 0, "Estimated minutes")
	cmd.Flags().IntVar(&f.repeatEvery, "repeat-every", 1, "Repetition interval length")
	cmd.Flags().StringVar(&f.repeatUnit, "repeat-unit", "", "Repetition unit: minutes, hours, days, weeks, months, or years")
	cmd.Flags().StringVar(&f.repeatMethod, "repeat-method", "", "Repetition method: fixed, start-after-completion, or due-after-completion")
}

// input converts the flags to a TaskInput. Only flags the user actually set
// end up in the input, so edit leaves unset attributes alone.
func (f *taskAttributeFlags) input(cmd *cobra.Command) (omnifocus.TaskInput, error) {
	input := omnifocus.TaskInput{
		Note:        f.note,
		ProjectName: f.project,
		ParentID:    f.parent,
		Tags:        parseCommaSeparatedList(f.tags),
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
	if cmd.Flags().Changed("flagged") {
		input.Flagged = f.flagged
		input.FlaggedSet = true
	}
	if f.estimate > 0 {
		input.EstimatedMinutes = f.estimate
	}

	if f.repeatUnit != "" {
		unit, err := script.ParseRepetitionUnit(f.repeatUnit)
		if err != nil {
			return input, err
		}
		rule := &script.RepetitionRule{Unit: unit, Steps: f.repeatEvery}
		if f.repeatMethod != "" {
			method, err := script.ParseRepetitionMethod(f.repeatMethod)
			if err != nil {
				return input, err
			}
			rule.Method = method
		}
		if err := rule.Validate(); err != nil {
			return input, err
		}
		input.Repetition = rule
	}

	return input, nil
}

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage OmniFocus tasks",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskGetCmd())
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskEditCmd())
	cmd.AddCommand(newTaskCompleteCmd())
	cmd.AddCommand(newTaskRemoveCmd())
	cmd.AddCommand(newTaskMoveCmd())
	cmd.AddCommand(newTaskDuplicateCmd())

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var (
		inbox     bool
		flagged   bool
		available bool
		completed bool
		project   string
		tag       string
		search    string
		dueBefore string
		dueAfter  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := omnifocus.TaskFilter{
				Inbox:       inbox,
				Flagged:     flagged,
				Available:   available,
				Completed:   completed,
				ProjectName: project,
				TagName:     tag,
				Search:      search,
			}
			if dueBefore != "" {
				t, err := omnifocus.ParseDate(dueBefore)
				if err != nil {
					return fmt.Errorf("due-before: %w", err)
				}
				filter.DueBefore = t
			}
			if dueAfter != "" {
				t, err := omnifocus.ParseDate(dueAfter)
				if err != nil {
					return fmt.Errorf("due-after: %w", err)
				}
				filter.DueAfter = t
			}

			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			tasks, err := client.ListTasks(filter)
			if err != nil {
				return err
			}
			return printJSON(tasks)
		},
	}

	cmd.Flags().BoolVar(&inbox, "inbox", false, "Only inbox tasks")
	cmd.Flags().BoolVar(&flagged, "flagged", false, "Only flagged tasks")
	cmd.Flags().BoolVar(&available, "available", false, "Only available tasks")
	cmd.Flags().BoolVar(&completed, "completed", false, "Include completed tasks")
	cmd.Flags().StringVar(&project, "project", "", "Only tasks in this project")
	cmd.Flags().StringVar(&tag, "tag", "", "Only tasks carrying this tag")
	cmd.Flags().StringVar(&search, "search", "", "Substring match on name and note")
	cmd.Flags().StringVar(&dueBefore, "due-before", "", "Only tasks due before this date")
	cmd.Flags().StringVar(&dueAfter, "due-after", "", "Only tasks due after this date")

	return cmd
}

func newTaskGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>...",
		Short: "Get tasks by ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			tasks := make([]omnifocus.Task, 0, len(args))
			for _, id := range args {
				task, err := client.GetTask(id)
				if err != nil {
					return err
				}
				tasks = append(tasks, *task)
			}
			if len(tasks) == 1 {
				return printJSON(tasks[0])
			}
			return printJSON(tasks)
		},
	}
}

func newTaskAddCmd() *cobra.Command {
	var attrs taskAttributeFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := attrs.input(cmd)
			if err != nil {
				return err
			}
			input.Name = args[0]

			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			task, err := client.AddTask(input)
			if err != nil {
				return err
			}
			return printJSON(task)
		},
	}

	attrs.register(cmd)
	return cmd
}

func newTaskEditCmd() *cobra.Command {
	var (
		attrs           taskAttributeFlags
		name            string
		clearDue        bool
		clearDefer      bool
		clearRepetition bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task. Only the provided flags change anything.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := attrs.input(cmd)
			if err != nil {
				return err
			}
			input.Name = name
			input.ClearDueDate = clearDue
			input.ClearDeferDate = clearDefer
			input.ClearRepetition = clearRepetition

			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			task, err := client.EditTask(args[0], input)
			if err != nil {
				return err
			}
			return printJSON(task)
		},
	}

	attrs.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "New task name")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().BoolVar(&clearDefer, "clear-defer", false, "Remove the defer date")
	cmd.Flags().BoolVar(&clearRepetition, "clear-repetition", false, "Remove the repetition rule")

	return cmd
}

func newTaskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>...",
		Short: "Mark tasks complete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range args {
				task, err := client.CompleteTask(id)
				if err != nil {
					return err
				}
				if err := printJSON(task); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTaskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Delete tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := client.RemoveTask(id); err != nil {
					return err
				}
				fmt.Printf("Deleted task %s\n", id)
			}
			return nil
		},
	}
}

func newTaskMoveCmd() *cobra.Command {
	var (
		project string
		parent  string
	)

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a task into a project or under a parent task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if project == "" && parent == "" {
				return fmt.Errorf("either --project or --parent is required")
			}

			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			task, err := client.MoveTask(args[0], project, parent)
			if err != nil {
				return err
			}
			return printJSON(task)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Destination project name")
	cmd.Flags().StringVar(&parent, "parent", "", "Destination parent task ID")

	return cmd
}

func newTaskDuplicateCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Duplicate a task one or more times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}

			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			tasks, err := client.DuplicateTask(args[0], count)
			if err != nil {
				return err
			}
			return printJSON(tasks)
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of copies to create")

	return cmd
}
