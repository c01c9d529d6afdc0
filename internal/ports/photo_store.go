package ports

import (
	"context"
	"io"
)

// Stores a bin photo and returns the URL clients should reference.
type PhotoStore interface {
	UploadPhoto(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
