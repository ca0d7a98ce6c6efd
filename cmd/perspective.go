package cmd

import (
	"github.com/spf13/cobra"
)

func newPerspectiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perspective",
		Short: "List and open OmniFocus perspectives",
	}

	cmd.AddCommand(newPerspectiveListCmd())
	cmd.AddCommand(newPerspectiveOpenCmd())

	return cmd
}

func newPerspectiveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom perspectives",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			perspectives, err := client.ListPerspectives()
			if err != nil {
				return err
			}
			return printJSON(perspectives)
		},
	}
}

func newPerspectiveOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Switch the frontmost OmniFocus window to the named perspective",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			perspective, err := client.OpenPerspective(args[0])
			if err != nil {
				return err
			}
			return printJSON(perspective)
		},
	}
}
