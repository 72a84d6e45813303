package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "a@x.com", "$2a$fakehash").
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := NewUserRepo(db)
	id, err := repo.Create(context.Background(), "alice", "a@x.com", "$2a$fakehash")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_NormalizesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "a@x.com", "h").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "alice", "  A@X.com ", "h")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@x.com' for key 'uq_users_email'"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "bob", "a@x.com", "h2")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_EmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM users").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM users").
		WithArgs("b@x.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)

	exists, err := repo.EmailExists(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(int64(3), "alice", "a@x.com", "hash", now, now)
	mock.ExpectQuery("SELECT id,username,email,password_hash,created_at,updated_at FROM users").
		WithArgs("a@x.com").
		WillReturnRows(rows)

	repo := NewUserRepo(db)
	u, err := repo.GetByEmail(context.Background(), "A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id,username,email,password_hash,created_at,updated_at FROM users").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
