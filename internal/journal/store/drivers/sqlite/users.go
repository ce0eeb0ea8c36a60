package sqlite

import (
	"context"
	"database/sql"

	"github.com/wayfarerhq/wayfarer/internal/journal/domain"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, full_name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.Email, u.PasswordHash, toMillis(u.CreatedAt),
	)
	return mapConflict(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, password_hash, created_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, password_hash, created_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var createdAt int64

	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &createdAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}
