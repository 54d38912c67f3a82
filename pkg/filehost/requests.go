package filehost

import (
	"io"

	"github.com/simplehost/filehost/pkg/filehost/preview"
)

// UploadFileRequest contains the parameters for storing a new file.
// ContentType is the client-declared media type; when empty the service
// sniffs the type from the stored bytes.
type UploadFileRequest struct {
	Reader      io.Reader
	FileName    string
	ContentType string
}

// DownloadResult is an open stream over a file's original bytes.
// The caller owns Reader and must close it.
type DownloadResult struct {
	Reader      io.ReadCloser
	FileName    string
	ContentType string
	SizeBytes   int64
}

// PreviewResult holds a file's content prepared for inline rendering.
// ContentType is the full response header value, including a charset
// suffix for text strategies.
type PreviewResult struct {
	Data        []byte
	ContentType string
	Category    preview.Category
}
