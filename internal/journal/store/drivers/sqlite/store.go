package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/journal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users     { return &usersRepo{db: s.db} }
func (s *Store) Stories() store.Stories { return &storiesRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConflict translates sqlite unique-constraint violations. The modernc
// driver doesn't export a stable error value for this, so match the message.
func mapConflict(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// Timestamps are persisted as integer epoch milliseconds, which is also the
// unit the transport layer speaks.

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Visited locations are an ordered list persisted as a JSON array in a TEXT
// column. Keyword search relies on substring matching over this serialized
// form.

func encodeLocations(locations []string) (string, error) {
	if locations == nil {
		locations = []string{}
	}
	b, err := json.Marshal(locations)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeLocations(raw string) ([]string, error) {
	var locations []string
	if err := json.Unmarshal([]byte(raw), &locations); err != nil {
		return nil, err
	}
	return locations, nil
}
