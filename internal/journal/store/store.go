package store

import (
	"context"
	"errors"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/journal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
//
// Story reads and mutations always take the owner's id: ownership is a
// filter baked into every query, so a story owned by someone else is
// indistinguishable from a story that doesn't exist.
type Store interface {
	Users() Users
	Stories() Stories

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is already registered.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Stories interface {
	// CreateStory inserts a new story (id is ULID).
	CreateStory(ctx context.Context, s domain.TravelStory) error

	// GetStory returns the story with the given id owned by ownerID.
	GetStory(ctx context.Context, ownerID, id string) (domain.TravelStory, error)

	// ListStories returns all stories owned by ownerID, favourites first.
	ListStories(ctx context.Context, ownerID string) ([]domain.TravelStory, error)

	// UpdateStory replaces the mutable fields (title, story, locations,
	// image url, visited date) of an owned story.
	UpdateStory(ctx context.Context, s domain.TravelStory) error

	// SetFavourite flips the favourite flag on an owned story.
	SetFavourite(ctx context.Context, ownerID, id string, isFavourite bool) error

	// DeleteStory removes an owned story.
	DeleteStory(ctx context.Context, ownerID, id string) error

	// SearchStories returns owned stories whose title, body, or any visited
	// location contains keyword as a case-insensitive substring, favourites
	// first.
	SearchStories(ctx context.Context, ownerID, keyword string) ([]domain.TravelStory, error)

	// ListStoriesByDateRange returns owned stories whose visited date falls
	// in [start, end] inclusive, favourites first.
	ListStoriesByDateRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.TravelStory, error)
}
