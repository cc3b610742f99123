package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hushfile/hushfile-cli/internal/transfer"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"relative path", "../escaped.txt", "escaped.txt"},
		{"absolute path", "/etc/passwd", "passwd"},
		{"nested", "a/b/c.txt", "c.txt"},
		{"dot", ".", ""},
		{"dotdot", "..", ""},
		{"root", "/", ""},
		{"dash", "-", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeFilename(tt.in))
		})
	}
}

func TestDownloadSanitizesMetadataFilename(t *testing.T) {
	srv, state := newHushfileServer(t)
	payload := []byte("escape attempt")
	seedFile(t, state, "pw123", transfer.Metadata{
		Filename: "../escaped.txt",
		MimeType: "text/plain",
		FileSize: int64(len(payload)),
	}, payload)

	dir := t.TempDir()
	chdir(t, dir)

	out := captureStdout(t, func() {
		require.NoError(t, runCLI(t, "download", srv.URL+"/abc123#pw123"))
	})
	assert.Contains(t, out, "Saved escaped.txt")

	got, err := os.ReadFile(filepath.Join(dir, "escaped.txt"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Nothing may land outside the working directory.
	_, err = os.Stat(filepath.Join(dir, "..", "escaped.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadShareURLServerWins(t *testing.T) {
	urlSrv, urlState := newHushfileServer(t)
	cfgSrv, cfgState := newHushfileServer(t)

	payload := []byte("served by the host in the URL")
	seedFile(t, urlState, "pw123", transfer.Metadata{
		Filename: "hello.txt",
		MimeType: "text/plain",
		FileSize: int64(len(payload)),
	}, payload)

	chdir(t, t.TempDir())

	out := captureStdout(t, func() {
		require.NoError(t, runCLI(t, "download", urlSrv.URL+"/abc123#pw123", "--server", cfgSrv.URL))
	})
	assert.Contains(t, out, "Saved hello.txt")

	assert.NotZero(t, urlState.hitCount("/api/file"))
	assert.Zero(t, cfgState.totalHits(), "the configured server must not be contacted")
}

func TestDownloadFilenameFallsBackToFileID(t *testing.T) {
	srv, state := newHushfileServer(t)
	payload := []byte("anonymous payload")
	seedFile(t, state, "pw123", transfer.Metadata{
		MimeType: "application/octet-stream",
		FileSize: int64(len(payload)),
	}, payload)

	dir := t.TempDir()
	chdir(t, dir)

	captureStdout(t, func() {
		require.NoError(t, runCLI(t, "download", srv.URL+"/abc123#pw123"))
	})

	got, err := os.ReadFile(filepath.Join(dir, "abc123"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDownloadRefusesOverwrite(t *testing.T) {
	srv, state := newHushfileServer(t)
	payload := []byte("fresh content")
	seedFile(t, state, "pw123", transfer.Metadata{
		Filename: "hello.txt",
		MimeType: "text/plain",
		FileSize: int64(len(payload)),
	}, payload)

	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("hello.txt", []byte("old content"), 0600))

	err := runCLI(t, "download", srv.URL+"/abc123#pw123")
	require.ErrorIs(t, err, os.ErrExist)

	got, err := os.ReadFile("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "old content", string(got))

	captureStdout(t, func() {
		require.NoError(t, runCLI(t, "download", srv.URL+"/abc123#pw123", "--force"))
	})

	got, err = os.ReadFile("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDownloadToStdout(t *testing.T) {
	srv, state := newHushfileServer(t)
	payload := []byte("streamed, not written to a file named dash\n")
	seedFile(t, state, "pw123", transfer.Metadata{
		Filename: "hello.txt",
		MimeType: "text/plain",
		FileSize: int64(len(payload)),
	}, payload)

	chdir(t, t.TempDir())

	out := captureStdout(t, func() {
		require.NoError(t, runCLI(t, "download", srv.URL+"/abc123#pw123", "-o", "-"))
	})
	assert.Equal(t, string(payload), out)

	_, err := os.Stat("-")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadExplicitOutputPath(t *testing.T) {
	srv, state := newHushfileServer(t)
	payload := []byte("goes where -o says")
	seedFile(t, state, "pw123", transfer.Metadata{
		Filename: "ignored.txt",
		MimeType: "text/plain",
		FileSize: int64(len(payload)),
	}, payload)

	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.Mkdir("sub", 0750))

	captureStdout(t, func() {
		require.NoError(t, runCLI(t, "download", srv.URL+"/abc123#pw123", "-o", filepath.Join("sub", "out.bin")))
	})

	got, err := os.ReadFile(filepath.Join(dir, "sub", "out.bin"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = os.Stat(filepath.Join(dir, "ignored.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadMissingFile(t *testing.T) {
	srv, _ := newHushfileServer(t)

	err := runCLI(t, "download", srv.URL+"/nosuch#pw123")
	require.ErrorIs(t, err, transfer.ErrNotFound)
}
