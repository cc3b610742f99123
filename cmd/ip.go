package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hushfile/hushfile-cli/internal/transfer"
)

var ipCmd = &cobra.Command{
	Use:   "ip <url|fileid>",
	Short: "Show the addresses a file was uploaded from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, fileID, _, err := transfer.ParseShareTarget(args[0])
		if err != nil {
			return err
		}

		client, _, err := newClient(server)
		if err != nil {
			return err
		}

		resp, err := client.UploaderIPs(context.Background(), fileID)
		if err != nil {
			return fmt.Errorf("fetching uploader addresses for %s: %w", fileID, err)
		}
		if len(resp.UploadIP) == 0 {
			fmt.Println("No uploader addresses recorded.")
			return nil
		}

		for _, addr := range resp.UploadIP {
			fmt.Println(addr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ipCmd)
}
