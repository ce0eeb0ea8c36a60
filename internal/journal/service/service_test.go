package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/journal/domain"
	"github.com/wayfarerhq/wayfarer/internal/journal/filestore"
	"github.com/wayfarerhq/wayfarer/internal/journal/store"
	"github.com/wayfarerhq/wayfarer/internal/journal/store/drivers/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "journal_test.db")
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func registerTestUser(t *testing.T, users *UserService, email string) domain.User {
	t.Helper()

	user, err := users.Register(context.Background(), "Test User", email, "hunter2hunter2")
	require.NoError(t, err)
	return user
}

// memFiles is an in-memory FileStore for exercising image handling.
type memFiles struct {
	objects map[string][]byte
	saveErr error
	delErr  error
}

func newMemFiles() *memFiles {
	return &memFiles{objects: map[string][]byte{}}
}

func (m *memFiles) Save(_ context.Context, name string, r io.Reader, _ int64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[name] = data
	return nil
}

func (m *memFiles) Delete(_ context.Context, name string) error {
	if m.delErr != nil {
		return m.delErr
	}
	if _, ok := m.objects[name]; !ok {
		return filestore.ErrNotFound
	}
	delete(m.objects, name)
	return nil
}

func (m *memFiles) Exists(_ context.Context, name string) (bool, error) {
	_, ok := m.objects[name]
	return ok, nil
}

var errDiskBroken = errors.New("disk broken")
