package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hushfile/hushfile-cli/internal/transfer"
	"github.com/hushfile/hushfile-cli/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <url|fileid> [deletepassword]",
	Short: "Delete an uploaded file from the server",
	Long: `Ask the server to remove a file. This only works when the upload was
made deletable and requires the delete password printed at upload time. When
the password is not given as an argument it is asked for on the terminal.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, fileID, _, err := transfer.ParseShareTarget(args[0])
		if err != nil {
			return err
		}

		var deletePassword string
		if len(args) == 2 {
			deletePassword = args[1]
		} else {
			if deletePassword, err = ui.PromptPassword("Delete password: "); err != nil {
				return err
			}
		}

		client, _, err := newClient(server)
		if err != nil {
			return err
		}

		resp, err := client.Delete(context.Background(), fileID, deletePassword)
		if err != nil {
			return fmt.Errorf("deleting %s: %w", fileID, err)
		}
		if !resp.Deleted {
			return fmt.Errorf("server refused to delete %s", fileID)
		}

		fmt.Printf("Deleted %s\n", fileID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
