package domain

import "time"

// User is an account holder. Accounts are created once at registration and
// never mutated or deleted afterwards; there is no profile-edit flow.
type User struct {
	ID           string
	FullName     string
	Email        string // unique, compared exactly as stored
	PasswordHash string // argon2id PHC string, never exposed in responses
	CreatedAt    time.Time
}
