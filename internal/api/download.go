package api

import (
	"context"
	"net/url"
	"strconv"
)

// Metadata fetches the encrypted metadata envelope for fileid. The body
// comes back exactly as it was uploaded; decryption is the caller's job.
func (c *Client) Metadata(ctx context.Context, fileID string) (string, error) {
	q := url.Values{"fileid": {fileID}}
	return c.GetText(ctx, "/api/metadata?"+q.Encode())
}

// File fetches one encrypted chunk envelope of fileid.
func (c *Client) File(ctx context.Context, fileID string, chunkNumber int) (string, error) {
	q := url.Values{
		"fileid":      {fileID},
		"chunknumber": {strconv.Itoa(chunkNumber)},
	}
	return c.GetText(ctx, "/api/file?"+q.Encode())
}
