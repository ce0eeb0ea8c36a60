// Package disk is a FileStore backed by a local uploads directory, served
// statically by the HTTP layer. This is the default driver.
package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wayfarerhq/wayfarer/internal/journal/filestore"
)

type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a store
// rooted at it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("disk: create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory, used to mount the static file server.
func (s *Store) Dir() string { return s.dir }

func (s *Store) Save(ctx context.Context, name string, r io.Reader, size int64) error {
	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("disk: open %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("disk: write %s: %w", name, err)
	}
	return f.Close()
}

func (s *Store) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return filestore.ErrNotFound
	}
	return err
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// path confines name to the uploads directory. Names come from URL path
// segments, so strip any directory components.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
