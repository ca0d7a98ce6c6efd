package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage OmniFocus folders",
	}

	cmd.AddCommand(newFolderListCmd())
	cmd.AddCommand(newFolderGetCmd())
	cmd.AddCommand(newFolderAddCmd())
	cmd.AddCommand(newFolderRenameCmd())
	cmd.AddCommand(newFolderMoveCmd())
	cmd.AddCommand(newFolderRemoveCmd())

	return cmd
}

func newFolderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			folders, err := client.ListFolders()
			if err != nil {
				return err
			}
			return printJSON(folders)
		},
	}
}

func newFolderGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a folder by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := client.GetFolder(args[0])
			if err != nil {
				return err
			}
			return printJSON(folder)
		},
	}
}

func newFolderAddCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := client.AddFolder(args[0], parent)
			if err != nil {
				return err
			}
			return printJSON(folder)
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent folder path separated by ' / '")

	return cmd
}

func newFolderRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := client.RenameFolder(args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(folder)
		},
	}
}

func newFolderMoveCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a folder under another folder path, or to the top level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := client.MoveFolder(args[0], parent)
			if err != nil {
				return err
			}
			return printJSON(folder)
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Destination folder path; empty moves the folder to the top level")

	return cmd
}

func newFolderRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a folder and everything inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOmniFocusClient(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.RemoveFolder(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted folder %s\n", args[0])
			return nil
		},
	}
}
