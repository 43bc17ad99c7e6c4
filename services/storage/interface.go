package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned when deleting an object that does not exist.
var ErrObjectNotFound = errors.New("storage object not found")

// BlobStore keeps binary objects and hands out public URLs for them.
type BlobStore interface {
	// Put stores data at path and returns the public URL.
	Put(ctx context.Context, path, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}
