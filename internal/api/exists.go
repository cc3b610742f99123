package api

import (
	"context"
	"net/url"
)

// ExistsResponse reports whether a fileid is known to the server and how
// much of it has arrived, as returned by GET /api/exists.
type ExistsResponse struct {
	FileID    string `json:"fileid"`
	Exists    bool   `json:"exists"`
	Chunks    int    `json:"chunks"`
	TotalSize int64  `json:"totalsize"`
	Finished  bool   `json:"finished"`
}

// Exists asks the server whether fileid exists and whether its upload ran
// to completion. The chunk count in the response is authoritative for
// downloads; the metadata filesize is only advisory.
func (c *Client) Exists(ctx context.Context, fileID string) (*ExistsResponse, error) {
	q := url.Values{"fileid": {fileID}}
	var result ExistsResponse
	if err := c.Get(ctx, "/api/exists?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// IPResponse lists the addresses a file's chunks were uploaded from,
// as returned by GET /api/ip.
type IPResponse struct {
	FileID   string   `json:"fileid"`
	UploadIP []string `json:"uploadip"`
}

// UploaderIPs returns the addresses the chunks of fileid were uploaded from.
func (c *Client) UploaderIPs(ctx context.Context, fileID string) (*IPResponse, error) {
	q := url.Values{"fileid": {fileID}}
	var result IPResponse
	if err := c.Get(ctx, "/api/ip?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
