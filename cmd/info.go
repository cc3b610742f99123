package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server limits and operator contact",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient("")
		if err != nil {
			return err
		}

		info, err := client.GetServerInfo(context.Background())
		if err != nil {
			return fmt.Errorf("fetching server info: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Server:\t%s\n", cfg.Server)
		fmt.Fprintf(w, "Max file size:\t%s (%d bytes)\n", humanSize(info.MaxFileSizeBytes), info.MaxFileSizeBytes)
		fmt.Fprintf(w, "Retention:\t%d hours\n", info.MaxRetentionHours)
		fmt.Fprintf(w, "Operator:\t%s\n", info.ServerOperatorEmail)
		w.Flush()

		return nil
	},
}

// humanSize renders a byte count with a binary unit, one decimal.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
