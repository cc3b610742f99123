package transfer

import (
	"context"
	"fmt"
	"io"

	"github.com/hushfile/hushfile-cli/internal/api"
	"github.com/hushfile/hushfile-cli/internal/crypto"
)

// UploadSession uploads one file as a sequence of encrypted chunks. A
// session is good for exactly one Run.
type UploadSession struct {
	client   Transport
	password string
	meta     Metadata

	state          UploadState
	fileID         string
	uploadPassword string

	// Progress, when set, is called after every uploaded chunk.
	Progress ProgressFunc
}

// UploadResult reports a finished upload.
type UploadResult struct {
	FileID string
	Chunks int
}

// NewUploadSession prepares an upload of the file described by meta,
// encrypting everything under password. meta.FileSize must match the
// number of bytes the reader will yield.
func NewUploadSession(client Transport, password string, meta Metadata) *UploadSession {
	return &UploadSession{client: client, password: password, meta: meta}
}

// State reports the session's lifecycle state.
func (s *UploadSession) State() UploadState { return s.state }

// Run performs the whole upload: the server limit check, then every chunk
// strictly in order. Chunk zero carries the metadata envelope and the
// delete password and mints the fileid; the fileid and upload password from
// its response authenticate every later chunk; the last chunk, and only the
// last, carries the finish flag.
func (s *UploadSession) Run(ctx context.Context, r io.Reader) (*UploadResult, error) {
	if s.state != UploadIdle {
		return nil, fmt.Errorf("upload session already used (state %q)", s.state)
	}

	result, err := s.run(ctx, r)
	if err != nil {
		s.state = UploadFailed
		return nil, err
	}
	s.state = UploadFinished
	return result, nil
}

func (s *UploadSession) run(ctx context.Context, r io.Reader) (*UploadResult, error) {
	info, err := s.client.GetServerInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching server limits: %w", err)
	}
	if info.MaxFileSizeBytes > 0 && s.meta.FileSize > info.MaxFileSizeBytes {
		return nil, &SizeLimitError{Size: s.meta.FileSize, Limit: info.MaxFileSizeBytes}
	}

	metadataEnvelope, err := crypto.Encrypt([]byte(s.meta.Encode()), s.password)
	if err != nil {
		return nil, fmt.Errorf("encrypting metadata: %w", err)
	}

	total := TotalChunks(s.meta.FileSize)
	buf := make([]byte, ChunkSize)

	for i := 0; i < total; i++ {
		want := ChunkSize
		if i == total-1 {
			want = int(s.meta.FileSize - int64(total-1)*ChunkSize)
		}
		if _, err := io.ReadFull(r, buf[:want]); err != nil {
			return nil, fmt.Errorf("reading chunk %d: %w", i, err)
		}

		envelope, err := crypto.Encrypt(buf[:want], s.password)
		if err != nil {
			return nil, fmt.Errorf("encrypting chunk %d: %w", i, err)
		}

		chunk := api.UploadChunk{
			Cryptofile:   envelope,
			ChunkNumber:  i,
			FinishUpload: i == total-1,
		}
		if i == 0 {
			chunk.Metadata = metadataEnvelope
			chunk.DeletePassword = s.meta.DeletePassword
		} else {
			chunk.FileID = s.fileID
			chunk.UploadPassword = s.uploadPassword
		}

		resp, err := s.client.Upload(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("uploading chunk %d: %w", i, err)
		}

		if i == 0 {
			if resp.FileID == "" {
				return nil, fmt.Errorf("server assigned no fileid to chunk 0")
			}
			s.fileID = resp.FileID
			s.uploadPassword = resp.UploadPassword
			s.state = UploadFirstChunkSent
		} else {
			s.state = UploadSending
		}

		if s.Progress != nil {
			s.Progress(i+1, total)
		}
	}

	return &UploadResult{FileID: s.fileID, Chunks: total}, nil
}
