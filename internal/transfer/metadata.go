package transfer

import (
	"fmt"
	"net/url"
	"strconv"
)

// Metadata describes an uploaded file. It travels next to the chunks as an
// encrypted envelope of its own, never in cleartext, so the server learns
// nothing about the file beyond its encrypted size.
type Metadata struct {
	Filename       string
	MimeType       string
	FileSize       int64
	DeletePassword string
}

// Encode renders the metadata as the URL-encoded key=value record other
// hushfile clients expect inside the metadata envelope.
func (m Metadata) Encode() string {
	v := url.Values{}
	v.Set("filename", m.Filename)
	v.Set("mimetype", m.MimeType)
	v.Set("filesize", strconv.FormatInt(m.FileSize, 10))
	if m.DeletePassword != "" {
		v.Set("deletepassword", m.DeletePassword)
	}
	return v.Encode()
}

// ParseMetadata decodes a record produced by Encode or by another client.
// Missing keys are left at their zero values; the filesize is advisory
// anyway, the server's chunk count is what downloads trust.
func ParseMetadata(record string) (*Metadata, error) {
	v, err := url.ParseQuery(record)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata record: %w", err)
	}

	m := &Metadata{
		Filename:       v.Get("filename"),
		MimeType:       v.Get("mimetype"),
		DeletePassword: v.Get("deletepassword"),
	}
	if raw := v.Get("filesize"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing metadata filesize %q: %w", raw, err)
		}
		m.FileSize = size
	}
	return m, nil
}
