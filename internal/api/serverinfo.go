package api

import "context"

// ServerInfo describes a server's published limits and operator contact,
// as returned by GET /api/serverinfo.
type ServerInfo struct {
	ServerOperatorEmail string `json:"server_operator_email"`
	MaxRetentionHours   int    `json:"max_retention_hours"`
	MaxFileSizeBytes    int64  `json:"max_filesize_bytes"`
}

// GetServerInfo fetches the server limits. Uploads consult this before
// sending anything so an oversized file fails fast instead of mid-transfer.
func (c *Client) GetServerInfo(ctx context.Context) (*ServerInfo, error) {
	var result ServerInfo
	if err := c.Get(ctx, "/api/serverinfo", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
