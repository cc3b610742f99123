package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hushfile/hushfile-cli/internal/api"
	"github.com/hushfile/hushfile-cli/internal/crypto"
)

// DownloadSession fetches one file: the existence check, the metadata
// envelope, then every chunk in order. FetchMetadata runs first so callers
// can name the output file after the decrypted metadata before the first
// chunk arrives; WriteChunks then streams the plaintext.
type DownloadSession struct {
	client   Transport
	fileID   string
	password string

	state  DownloadState
	chunks int

	// Progress, when set, is called after every downloaded chunk.
	Progress ProgressFunc
}

// NewDownloadSession prepares a download of fileID, opening every envelope
// with password.
func NewDownloadSession(client Transport, fileID, password string) *DownloadSession {
	return &DownloadSession{client: client, fileID: fileID, password: password}
}

// State reports the session's lifecycle state.
func (s *DownloadSession) State() DownloadState { return s.state }

// Chunks returns the server's chunk count once FetchMetadata has run. The
// count is authoritative; the filesize inside the metadata is advisory.
func (s *DownloadSession) Chunks() int { return s.chunks }

// FetchMetadata verifies the fileid exists and finished uploading, then
// fetches and decrypts the metadata envelope. ErrNotFound and
// ErrIncompleteUpload are raised before anything else is fetched; a wrong
// password typically surfaces as crypto.ErrEnvelopeFormat.
func (s *DownloadSession) FetchMetadata(ctx context.Context) (*Metadata, error) {
	if s.state != DownloadIdle {
		return nil, fmt.Errorf("download session already used (state %q)", s.state)
	}

	meta, err := s.fetchMetadata(ctx)
	if err != nil {
		s.state = DownloadFailed
		return nil, err
	}
	return meta, nil
}

func (s *DownloadSession) fetchMetadata(ctx context.Context) (*Metadata, error) {
	exists, err := s.client.Exists(ctx, s.fileID)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.fileID)
		}
		return nil, fmt.Errorf("checking fileid: %w", err)
	}
	if !exists.Exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.fileID)
	}
	if !exists.Finished {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteUpload, s.fileID)
	}
	s.chunks = exists.Chunks
	s.state = DownloadVerified

	s.state = DownloadFetchingMetadata
	envelope, err := s.client.Metadata(ctx, s.fileID)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %w", err)
	}
	record, err := crypto.Decrypt(envelope, s.password)
	if err != nil {
		return nil, fmt.Errorf("decrypting metadata (wrong password?): %w", err)
	}
	return ParseMetadata(string(record))
}

// WriteChunks downloads every chunk in order, decrypts each one and writes
// the plaintext to w. It requires a successful FetchMetadata first.
func (s *DownloadSession) WriteChunks(ctx context.Context, w io.Writer) error {
	if s.state != DownloadFetchingMetadata {
		return fmt.Errorf("metadata not fetched yet (state %q)", s.state)
	}

	if err := s.writeChunks(ctx, w); err != nil {
		s.state = DownloadFailed
		return err
	}
	s.state = DownloadComplete
	return nil
}

func (s *DownloadSession) writeChunks(ctx context.Context, w io.Writer) error {
	s.state = DownloadFetchingChunks
	for i := 0; i < s.chunks; i++ {
		envelope, err := s.client.File(ctx, s.fileID, i)
		if err != nil {
			return fmt.Errorf("fetching chunk %d: %w", i, err)
		}
		plaintext, err := crypto.Decrypt(envelope, s.password)
		if err != nil {
			return fmt.Errorf("decrypting chunk %d: %w", i, err)
		}
		if _, err := w.Write(plaintext); err != nil {
			return fmt.Errorf("writing chunk %d: %w", i, err)
		}
		if s.Progress != nil {
			s.Progress(i+1, s.chunks)
		}
	}
	return nil
}
