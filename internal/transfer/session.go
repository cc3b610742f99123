// Package transfer drives uploads and downloads against a hushfile server:
// chunking, enveloping, credential threading and the bookkeeping around
// them. Sessions are single-use and strictly sequential; nothing here
// uploads or fetches two chunks at once.
package transfer

import (
	"context"

	"github.com/hushfile/hushfile-cli/internal/api"
)

// ChunkSize is the fixed plaintext chunk size. Every chunk except the last
// is exactly this long.
const ChunkSize = 1 << 20

// Transport is the slice of the API client the sessions need. *api.Client
// satisfies it; tests substitute fakes.
type Transport interface {
	GetServerInfo(ctx context.Context) (*api.ServerInfo, error)
	Exists(ctx context.Context, fileID string) (*api.ExistsResponse, error)
	Upload(ctx context.Context, chunk api.UploadChunk) (*api.UploadResponse, error)
	Metadata(ctx context.Context, fileID string) (string, error)
	File(ctx context.Context, fileID string, chunkNumber int) (string, error)
}

// ProgressFunc is called after each chunk is transferred.
type ProgressFunc func(done, total int)

// TotalChunks returns how many ChunkSize chunks a file of size bytes
// occupies. An empty file still occupies one chunk, so there is always a
// chunk zero to carry the metadata and mint the fileid.
func TotalChunks(size int64) int {
	if size <= 0 {
		return 1
	}
	return int((size + ChunkSize - 1) / ChunkSize)
}

// UploadState tracks where an upload session is in its lifecycle.
type UploadState int

const (
	UploadIdle UploadState = iota
	UploadFirstChunkSent
	UploadSending
	UploadFinished
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadFirstChunkSent:
		return "first chunk sent"
	case UploadSending:
		return "sending"
	case UploadFinished:
		return "finished"
	case UploadFailed:
		return "failed"
	}
	return "unknown"
}

// DownloadState tracks where a download session is in its lifecycle.
type DownloadState int

const (
	DownloadIdle DownloadState = iota
	DownloadVerified
	DownloadFetchingMetadata
	DownloadFetchingChunks
	DownloadComplete
	DownloadFailed
)

func (s DownloadState) String() string {
	switch s {
	case DownloadIdle:
		return "idle"
	case DownloadVerified:
		return "verified"
	case DownloadFetchingMetadata:
		return "fetching metadata"
	case DownloadFetchingChunks:
		return "fetching chunks"
	case DownloadComplete:
		return "complete"
	case DownloadFailed:
		return "failed"
	}
	return "unknown"
}
