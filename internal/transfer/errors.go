package transfer

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a fileid the server does not know.
var ErrNotFound = errors.New("file not found")

// ErrIncompleteUpload reports a fileid whose upload never finished. The
// server keeps the partial chunks but the file cannot be downloaded.
var ErrIncompleteUpload = errors.New("upload was never finished")

// SizeLimitError reports a file larger than the server is willing to accept.
// It is raised before the first chunk leaves the machine.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file size %d bytes exceeds the server limit of %d bytes", e.Size, e.Limit)
}
