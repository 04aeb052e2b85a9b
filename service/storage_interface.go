package service

import (
	"context"
	"io"
)

// StorageInterface abstracts the attachment file store so controllers and
// tests don't depend on the Drive client directly.
type StorageInterface interface {
	Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}
