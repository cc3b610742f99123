package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hushfile/hushfile-cli/internal/transfer"
	"github.com/hushfile/hushfile-cli/internal/ui"
)

var downloadCmd = &cobra.Command{
	Use:   "download <url|fileid>",
	Short: "Download and decrypt a file",
	Long: `Download a shared file and decrypt it locally.

Accepts a full share URL, a fileid#password pair or a bare fileid. A full
URL names the server that holds the file; bare fileids use the configured
server. When the input carries no password, it is asked for on the terminal
instead, so the password never ends up in shell history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, fileID, password, err := transfer.ParseShareTarget(args[0])
		if err != nil {
			return err
		}
		if password == "" {
			if password, err = ui.PromptPassword("Password: "); err != nil {
				return err
			}
		}

		client, _, err := newClient(server)
		if err != nil {
			return err
		}

		session := transfer.NewDownloadSession(client, fileID, password)

		spinner := ui.New(fmt.Sprintf("Fetching metadata for %s…", fileID))
		spinner.Start()

		meta, err := session.FetchMetadata(context.Background())
		if err != nil {
			spinner.Stop()
			return err
		}

		outPath, _ := cmd.Flags().GetString("output")
		toStdout := outPath == "-"
		if outPath == "" {
			// The metadata is uploader-controlled; only a bare file name may
			// come out of it, never a path.
			outPath = safeFilename(meta.Filename)
			if outPath == "" {
				outPath = fileID
			}
		}

		if toStdout {
			session.Progress = func(done, total int) {
				spinner.SetLabel(fmt.Sprintf("Downloading %s… chunk %d/%d", meta.Filename, done, total))
			}
			err = session.WriteChunks(context.Background(), os.Stdout)
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			return nil
		}

		force, _ := cmd.Flags().GetBool("force")
		openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if !force {
			openFlags |= os.O_EXCL
		}
		out, err := os.OpenFile(outPath, openFlags, 0600)
		if err != nil {
			spinner.Stop()
			return err
		}

		session.Progress = func(done, total int) {
			spinner.SetLabel(fmt.Sprintf("Downloading %s… chunk %d/%d", outPath, done, total))
		}

		err = session.WriteChunks(context.Background(), out)
		spinner.Stop()
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("download failed: %w", err)
		}

		fmt.Printf("Saved %s (%d bytes, %s)\n", outPath, meta.FileSize, meta.MimeType)
		return nil
	},
}

// safeFilename reduces an uploader-controlled filename to a bare name for
// the working directory. Anything that would land somewhere else comes back
// empty and the caller falls back to the fileid.
func safeFilename(name string) string {
	name = filepath.Base(name)
	switch name {
	case "", ".", "..", "-", string(filepath.Separator):
		return ""
	}
	return name
}

func init() {
	downloadCmd.Flags().StringP("output", "o", "", "output path, - for stdout (default: the filename from the metadata)")
	downloadCmd.Flags().Bool("force", false, "overwrite the output file if it exists")
	rootCmd.AddCommand(downloadCmd)
}
