package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage OmniFocus tags",
	}

	cmd.AddCommand(newTagListCmd())
	cmd.AddCommand(newTagGetCmd())
	cmd.AddCommand(newTagAddCmd())
	cmd.AddCommand(newTagRenameCmd())
	cmd.AddCommand(newTagRemoveCmd())

	return cmd
}

func newTagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			tags, err := client.ListTags()
			if err != nil {
				return err
			}
			return printJSON(tags)
		},
	}
}

func newTagGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a tag by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			tag, err := client.GetTag(args[0])
			if err != nil {
				return err
			}
			return printJSON(tag)
		},
	}
}

func newTagAddCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			tag, err := client.AddTag(args[0], parent)
			if err != nil {
				return err
			}
			return printJSON(tag)
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Name of the parent tag to nest under")

	return cmd
}

func newTagRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			tag, err := client.RenameTag(args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(tag)
		},
	}
}

func newTagRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.RemoveTag(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted tag %s\n", args[0])
			return nil
		},
	}
}
