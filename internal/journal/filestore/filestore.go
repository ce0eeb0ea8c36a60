// Package filestore abstracts the binary storage backing uploaded story
// images. Stories reference images by URL; the final path segment of that
// URL is the object name inside the store.
package filestore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound reports that the named object is not in the store.
var ErrNotFound = errors.New("filestore: not found")

// FileStore is implemented by the disk and s3 drivers.
type FileStore interface {
	// Save stores the object under name, replacing any previous content.
	Save(ctx context.Context, name string, r io.Reader, size int64) error

	// Delete removes the object. Returns ErrNotFound when it was never
	// there (or already gone).
	Delete(ctx context.Context, name string) error

	// Exists reports whether the object is present.
	Exists(ctx context.Context, name string) (bool, error)
}
