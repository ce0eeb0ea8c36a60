package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/journal/domain"
	"github.com/wayfarerhq/wayfarer/internal/journal/store"
	"github.com/wayfarerhq/wayfarer/pkg/cryptox"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService is the identity directory: it owns the user collection,
// enforces unique emails, and verifies credentials.
type UserService struct {
	Store store.Store

	// Now is the clock used for creation timestamps. Nil means time.Now.
	Now func() time.Time
}

// Register creates a new account with a freshly hashed password.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", "err", err)
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	// The unique index on email is the authority on duplicates; a racing
	// registration for the same address loses there, not on a pre-check.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", "err", err)
		return domain.User{}, err
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies an email/password pair and returns the matching
// user. A wrong password is always ErrInvalidCredentials, nothing more
// specific.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
