package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hushfile/hushfile-cli/internal/transfer"
)

var existsCmd = &cobra.Command{
	Use:   "exists <url|fileid>",
	Short: "Check whether a file exists on the server",
	Long: `Check whether a fileid is known to the server without downloading
anything. Exits non-zero when the file is gone, which makes it usable from
scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, fileID, _, err := transfer.ParseShareTarget(args[0])
		if err != nil {
			return err
		}

		client, _, err := newClient(server)
		if err != nil {
			return err
		}

		resp, err := client.Exists(context.Background(), fileID)
		if err != nil {
			return fmt.Errorf("checking %s: %w", fileID, err)
		}
		if !resp.Exists {
			return fmt.Errorf("%s does not exist", fileID)
		}

		status := "finished"
		if !resp.Finished {
			status = "upload not finished"
		}
		fmt.Printf("%s: %d chunk(s), %d bytes, %s\n", fileID, resp.Chunks, resp.TotalSize, status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(existsCmd)
}
