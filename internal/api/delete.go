package api

import (
	"context"
	"net/url"
)

// DeleteResponse confirms a deletion, as returned by POST /api/delete.
type DeleteResponse struct {
	FileID  string `json:"fileid"`
	Deleted bool   `json:"deleted"`
}

// Delete asks the server to remove fileid. The delete password is the
// plaintext one generated at upload time; it is never part of the share URL.
func (c *Client) Delete(ctx context.Context, fileID, deletePassword string) (*DeleteResponse, error) {
	form := url.Values{
		"fileid":         {fileID},
		"deletepassword": {deletePassword},
	}
	var result DeleteResponse
	if err := c.PostForm(ctx, "/api/delete", form.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
