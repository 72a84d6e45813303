package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haivu/notehub/internal/model"
)

var noteCols = []string{"id", "user_id", "title", "content", "markdown_enabled", "image_url", "audio_url", "drawing_data", "created_at", "updated_at"}

func TestNoteRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO notes").
		WithArgs(uint64(4), "t", "c", true, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = (.+) AND user_id").
		WithArgs(uint64(11), uint64(4)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(int64(11), int64(4), "t", "c", true, nil, nil, nil, now, now))

	repo := NewNoteRepo(db)
	n := &model.Note{UserID: 4, Title: "t", Content: "c", MarkdownEnabled: true}
	require.NoError(t, repo.Create(context.Background(), n))

	assert.Equal(t, uint64(11), n.ID)
	assert.Equal(t, uint64(4), n.UserID)
	assert.True(t, n.MarkdownEnabled)
	assert.Nil(t, n.ImageURL)
	assert.False(t, n.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_GetByIDAndOwner_FiltersOnOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// A note that exists but belongs to user 1 must look nonexistent to
	// user 2: the query itself carries the owner predicate.
	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = (.+) AND user_id").
		WithArgs(uint64(11), uint64(2)).
		WillReturnError(sql.ErrNoRows)

	repo := NewNoteRepo(db)
	_, err = repo.GetByIDAndOwner(context.Background(), 11, 2)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_GetByIDAndOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	img := "https://img"
	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = (.+) AND user_id").
		WithArgs(uint64(11), uint64(4)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(int64(11), int64(4), "t", "c", false, img, nil, nil, now, now))

	repo := NewNoteRepo(db)
	n, err := repo.GetByIDAndOwner(context.Background(), 11, 4)
	require.NoError(t, err)
	assert.Equal(t, "t", n.Title)
	assert.False(t, n.MarkdownEnabled)
	require.NotNil(t, n.ImageURL)
	assert.Equal(t, "https://img", *n.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_ListByOwner_OrderAndShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := time.Now().UTC()
	older := newer.Add(-time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM notes WHERE user_id = (.+) ORDER BY created_at DESC").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(int64(12), int64(4), "newer", "c2", true, nil, nil, nil, newer, newer).
			AddRow(int64(11), int64(4), "older", "c1", true, nil, nil, nil, older, older))

	repo := NewNoteRepo(db)
	notes, err := repo.ListByOwner(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "newer", notes[0].Title)
	assert.Equal(t, "older", notes[1].Title)
	assert.True(t, notes[0].CreatedAt.After(notes[1].CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_ListByOwner_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM notes WHERE user_id").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(noteCols))

	repo := NewNoteRepo(db)
	notes, err := repo.ListByOwner(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Len(t, notes, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("UPDATE notes").
		WithArgs("t2", "c2", false, nil, nil, nil, uint64(11), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = (.+) AND user_id").
		WithArgs(uint64(11), uint64(4)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(int64(11), int64(4), "t2", "c2", false, nil, nil, nil, now.Add(-time.Hour), now))

	repo := NewNoteRepo(db)
	n := &model.Note{ID: 11, UserID: 4, Title: "t2", Content: "c2"}
	require.NoError(t, repo.Update(context.Background(), n))
	assert.True(t, n.UpdatedAt.After(n.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_Update_NotFoundOrNotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE notes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewNoteRepo(db)
	n := &model.Note{ID: 11, UserID: 2, Title: "t", Content: "c"}
	err = repo.Update(context.Background(), n)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(uint64(11), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewNoteRepo(db)
	require.NoError(t, repo.DeleteByIDAndOwner(context.Background(), 11, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_Delete_NotFoundOrNotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(uint64(11), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewNoteRepo(db)
	err = repo.DeleteByIDAndOwner(context.Background(), 11, 2)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
