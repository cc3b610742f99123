package api

import (
	"context"
	"strconv"
)

// UploadChunk is one chunk of an upload in wire form. Metadata and
// DeletePassword ride along with chunk zero only. FileID and UploadPassword
// identify the upload on every later chunk and must be exactly what the
// first response handed back.
type UploadChunk struct {
	Cryptofile     string
	Metadata       string
	DeletePassword string
	ChunkNumber    int
	FinishUpload   bool
	FileID         string
	UploadPassword string
}

// UploadResponse is the server's view of an upload after a chunk POST.
type UploadResponse struct {
	FileID         string `json:"fileid"`
	UploadPassword string `json:"uploadpassword"`
	Chunks         int    `json:"chunks"`
	TotalSize      int64  `json:"totalsize"`
	Finished       bool   `json:"finished"`
}

// Upload posts one chunk to POST /api/upload. Optional fields are omitted
// from the form entirely rather than sent empty.
func (c *Client) Upload(ctx context.Context, chunk UploadChunk) (*UploadResponse, error) {
	fields := map[string]string{
		"chunknumber":  strconv.Itoa(chunk.ChunkNumber),
		"finishupload": strconv.FormatBool(chunk.FinishUpload),
	}
	if chunk.Metadata != "" {
		fields["metadata"] = chunk.Metadata
	}
	if chunk.DeletePassword != "" {
		fields["deletepassword"] = chunk.DeletePassword
	}
	if chunk.FileID != "" {
		fields["fileid"] = chunk.FileID
	}
	if chunk.UploadPassword != "" {
		fields["uploadpassword"] = chunk.UploadPassword
	}

	var result UploadResponse
	if err := c.PostMultipart(ctx, "/api/upload", "cryptofile", chunk.Cryptofile, fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
