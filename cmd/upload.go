package cmd

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hushfile/hushfile-cli/internal/crypto"
	"github.com/hushfile/hushfile-cli/internal/transfer"
	"github.com/hushfile/hushfile-cli/internal/ui"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Encrypt and upload a file",
	Long: `Encrypt a file on this machine and upload it chunk by chunk.

The password is generated locally and printed as the fragment of the share
URL. It never reaches the server, so anyone with the URL can decrypt the
file and nobody without it can.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return err
		}
		if stat.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}

		client, cfg, err := newClient("")
		if err != nil {
			return err
		}

		gen, err := crypto.NewPasswordGenerator(cfg.Password.MinLength, cfg.Password.MaxLength)
		if err != nil {
			return fmt.Errorf("password config: %w", err)
		}
		password, err := gen.Generate()
		if err != nil {
			return err
		}

		meta := transfer.Metadata{
			Filename: filepath.Base(path),
			MimeType: mimeTypeFor(path),
			FileSize: stat.Size(),
		}

		// The config supplies the default; the flag wins when set, in either
		// direction.
		deletable := cfg.Deletable
		if cmd.Flags().Changed("deletable") {
			deletable, _ = cmd.Flags().GetBool("deletable")
		}
		if deletable {
			if meta.DeletePassword, err = gen.Generate(); err != nil {
				return err
			}
		}

		session := transfer.NewUploadSession(client, password, meta)

		spinner := ui.New(fmt.Sprintf("Uploading %s…", meta.Filename))
		spinner.Start()
		session.Progress = func(done, total int) {
			spinner.SetLabel(fmt.Sprintf("Uploading %s… chunk %d/%d", meta.Filename, done, total))
		}

		result, err := session.Run(context.Background(), f)
		spinner.Stop()
		if err != nil {
			var sizeErr *transfer.SizeLimitError
			if errors.As(err, &sizeErr) {
				return fmt.Errorf("%s is too large: %w", path, err)
			}
			return fmt.Errorf("upload failed: %w", err)
		}

		fmt.Println(transfer.ShareURL(cfg.Server, result.FileID, password))
		if meta.DeletePassword != "" {
			fmt.Fprintf(os.Stderr, "Delete with: hushfile delete %s %s\n", result.FileID, meta.DeletePassword)
		}
		return nil
	},
}

// mimeTypeFor guesses a MIME type from the file extension, falling back to
// application/octet-stream.
func mimeTypeFor(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

func init() {
	uploadCmd.Flags().Bool("deletable", false, "generate a delete password so the file can be removed later")
	rootCmd.AddCommand(uploadCmd)
}
