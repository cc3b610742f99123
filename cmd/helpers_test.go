package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/hushfile/hushfile-cli/internal/crypto"
	"github.com/hushfile/hushfile-cli/internal/transfer"
)

// hushfileState is the in-memory store behind newHushfileServer. One fileid
// per server is enough for command tests.
type hushfileState struct {
	mu             sync.Mutex
	fileID         string
	uploadPassword string
	metadata       string
	deletePassword string
	chunks         map[int]string
	finished       bool
	deleted        bool
	maxFileSize    int64
	hits           map[string]int
}

func (s *hushfileState) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *hushfileState) totalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.hits {
		n += c
	}
	return n
}

func (s *hushfileState) storedChunk(n int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks[n]
}

func (s *hushfileState) storedMetadata() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadata
}

func (s *hushfileState) storedDeletePassword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletePassword
}

func (s *hushfileState) wasDeleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleted
}

func (s *hushfileState) totalSizeLocked() int64 {
	var total int64
	for _, c := range s.chunks {
		total += int64(len(c))
	}
	return total
}

// newHushfileServer starts an httptest server speaking enough of the
// hushfile API for the commands: serverinfo, upload, exists, metadata,
// file and delete.
func newHushfileServer(t *testing.T) (*httptest.Server, *hushfileState) {
	t.Helper()

	state := &hushfileState{
		fileID:         "abc123",
		uploadPassword: "up-secret",
		chunks:         map[int]string{},
		maxFileSize:    1 << 30,
		hits:           map[string]int{},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/serverinfo", func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		defer state.mu.Unlock()
		state.hits["/api/serverinfo"]++
		fmt.Fprintf(w, `{"server_operator_email":"ops@example.com","max_retention_hours":720,"max_filesize_bytes":%d}`,
			state.maxFileSize)
	})

	mux.HandleFunc("/api/exists", func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		defer state.mu.Unlock()
		state.hits["/api/exists"]++
		fileID := r.URL.Query().Get("fileid")
		if fileID != state.fileID || state.deleted || len(state.chunks) == 0 {
			fmt.Fprintf(w, `{"fileid":%q,"exists":false}`, fileID)
			return
		}
		fmt.Fprintf(w, `{"fileid":%q,"exists":true,"chunks":%d,"totalsize":%d,"finished":%t}`,
			fileID, len(state.chunks), state.totalSizeLocked(), state.finished)
	})

	mux.HandleFunc("/api/metadata", func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		defer state.mu.Unlock()
		state.hits["/api/metadata"]++
		if r.URL.Query().Get("fileid") != state.fileID {
			http.Error(w, "no such fileid", http.StatusNotFound)
			return
		}
		io.WriteString(w, state.metadata)
	})

	mux.HandleFunc("/api/file", func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		defer state.mu.Unlock()
		state.hits["/api/file"]++
		n, err := strconv.Atoi(r.URL.Query().Get("chunknumber"))
		if err != nil || r.URL.Query().Get("fileid") != state.fileID {
			http.Error(w, "no such chunk", http.StatusNotFound)
			return
		}
		chunk, ok := state.chunks[n]
		if !ok {
			http.Error(w, "no such chunk", http.StatusNotFound)
			return
		}
		io.WriteString(w, chunk)
	})

	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, _, err := r.FormFile("cryptofile")
		if err != nil {
			http.Error(w, "missing cryptofile", http.StatusBadRequest)
			return
		}
		body, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		state.mu.Lock()
		defer state.mu.Unlock()
		state.hits["/api/upload"]++

		n, err := strconv.Atoi(r.FormValue("chunknumber"))
		if err != nil {
			http.Error(w, "bad chunknumber", http.StatusBadRequest)
			return
		}
		if n == 0 {
			state.metadata = r.FormValue("metadata")
			state.deletePassword = r.FormValue("deletepassword")
		} else if r.FormValue("fileid") != state.fileID || r.FormValue("uploadpassword") != state.uploadPassword {
			http.Error(w, "wrong upload credentials", http.StatusForbidden)
			return
		}
		state.chunks[n] = string(body)
		if r.FormValue("finishupload") == "true" {
			state.finished = true
		}

		fmt.Fprintf(w, `{"fileid":%q,"uploadpassword":%q,"chunks":%d,"totalsize":%d,"finished":%t}`,
			state.fileID, state.uploadPassword, len(state.chunks), state.totalSizeLocked(), state.finished)
	})

	mux.HandleFunc("/api/delete", func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		defer state.mu.Unlock()
		state.hits["/api/delete"]++
		if state.deletePassword == "" || r.FormValue("fileid") != state.fileID ||
			r.FormValue("deletepassword") != state.deletePassword {
			http.Error(w, "wrong delete password", http.StatusUnauthorized)
			return
		}
		state.deleted = true
		fmt.Fprintf(w, `{"fileid":%q,"deleted":true}`, state.fileID)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, state
}

// seedFile stores an encrypted file on the fake server the way a finished
// upload would have left it.
func seedFile(t *testing.T, state *hushfileState, password string, meta transfer.Metadata, payload []byte) {
	t.Helper()

	envelope, err := crypto.Encrypt([]byte(meta.Encode()), password)
	require.NoError(t, err)

	state.mu.Lock()
	defer state.mu.Unlock()
	state.metadata = envelope
	state.deletePassword = meta.DeletePassword
	state.finished = true
	for i := 0; ; i++ {
		start := i * transfer.ChunkSize
		end := start + transfer.ChunkSize
		if end > len(payload) {
			end = len(payload)
		}
		chunk, err := crypto.Encrypt(payload[start:end], password)
		require.NoError(t, err)
		state.chunks[i] = chunk
		if end == len(payload) {
			break
		}
	}
}

// chdir switches the working directory to dir for the duration of the
// test, restoring the previous directory when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// runCLI executes the root command with args. Flag state is restored when
// the test finishes so runs stay independent.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()

	t.Cleanup(func() {
		cmds := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
		for _, c := range cmds {
			for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						_ = f.Value.Set(f.DefValue)
						f.Changed = false
					}
				})
			}
		}
	})

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// captureStdout runs fn with os.Stdout redirected into a pipe and returns
// everything fn wrote. Command output goes through fmt.Printf, so swapping
// the package-level file is enough.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}
