package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hushfile/hushfile-cli/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hushfile %s (%s build)\n", Version, config.BuildMode)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
