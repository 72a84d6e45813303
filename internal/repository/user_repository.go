package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/haivu/notehub/internal/model"
)

// UserRepo encapsulates all queries against the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// EmailExists reports whether a user with the given email is already
// registered. It is a pre-check only: the unique index on users.email is
// the true guard against the race between check and insert, and Create
// maps its violation to ErrEmailExists as well.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? LIMIT 1", email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a user with an already-hashed password and returns the
// new row's ID. A duplicate-key violation (MySQL error 1062) on the email
// index is surfaced as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (uint64, error) {
	email = normalizeEmail(email)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email. sql.ErrNoRows propagates
// when no user matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = normalizeEmail(email)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,password_hash,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
