package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the remote archive bucket.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Ping(ctx context.Context) error
}

// Archiver mirrors local artifacts into object storage.
type Archiver interface {
	Archive(ctx context.Context, issueDate string, paths ...string) ([]string, error)
}
