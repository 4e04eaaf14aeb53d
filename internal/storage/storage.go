package storage

import (
	"context"
	"errors"
	"io"
)

// Storage persists uploaded files (post covers, product images, PDF
// attachments) and serves them by public URL.
type Storage interface {
	// Put uploads the content and returns its public URL.
	Put(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error)
	// Delete removes an uploaded file by key.
	Delete(ctx context.Context, key string) error
}

// Storage errors
var (
	ErrUploadFailed = errors.New("storage: upload failed")
	ErrDeleteFailed = errors.New("storage: delete failed")
)
