package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/haivu/notehub/internal/model"
)

const noteColumns = "id, user_id, title, content, markdown_enabled, image_url, audio_url, drawing_data, created_at, updated_at"

// NoteRepo encapsulates all queries against the `notes` table. Every
// read, update and delete filters on both id and user_id: ownership is a
// mandatory predicate, not an afterthought in the handler layer.
type NoteRepo struct{ DB *sql.DB }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{DB: db} }

// Create inserts a new note owned by n.UserID. On success a follow-up
// SELECT populates the auto-generated ID, the column defaults and the
// timestamps so callers receive a fully populated record.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const qInsert = `INSERT INTO notes
	 (user_id, title, content, markdown_enabled, image_url, audio_url, drawing_data)
	 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, qInsert,
		n.UserID, n.Title, n.Content, n.MarkdownEnabled, n.ImageURL, n.AudioURL, n.DrawingData)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return r.scanOne(ctx, n, n.ID, n.UserID)
}

// GetByIDAndOwner fetches a note by id but only if it belongs to the
// given owner. A note that does not exist and a note owned by someone
// else both return ErrNoteNotFound.
func (r *NoteRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Note, error) {
	var n model.Note
	if err := r.scanOne(ctx, &n, id, ownerID); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByOwner returns all notes of the owner ordered newest-created
// first. A user with no notes gets an empty, non-nil slice.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Note, error) {
	const q = "SELECT " + noteColumns + " FROM notes WHERE user_id = ? ORDER BY created_at DESC, id DESC"
	rows, err := r.DB.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Note{}
	for rows.Next() {
		n := new(model.Note)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.MarkdownEnabled,
			&n.ImageURL, &n.AudioURL, &n.DrawingData, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces all mutable fields of the note matching n.ID and
// n.UserID and refreshes updated_at. Zero affected rows means not found
// or not owned; both yield ErrNoteNotFound. On success the note is
// re-read so the caller sees the refreshed timestamps. Concurrent updates
// to the same note are last-write-wins; there is no version column.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note) error {
	const q = `UPDATE notes
	 SET title = ?, content = ?, markdown_enabled = ?,
	     image_url = ?, audio_url = ?, drawing_data = ?, updated_at = CURRENT_TIMESTAMP
	 WHERE id = ? AND user_id = ?`
	res, err := r.DB.ExecContext(ctx, q,
		n.Title, n.Content, n.MarkdownEnabled, n.ImageURL, n.AudioURL, n.DrawingData,
		n.ID, n.UserID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNoteNotFound
	}
	return r.scanOne(ctx, n, n.ID, n.UserID)
}

// DeleteByIDAndOwner removes the note matching id and owner. Zero
// affected rows yields ErrNoteNotFound under the same indistinguishability
// rule as reads.
func (r *NoteRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM notes WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepo) scanOne(ctx context.Context, n *model.Note, id, ownerID uint64) error {
	const q = "SELECT " + noteColumns + " FROM notes WHERE id = ? AND user_id = ?"
	err := r.DB.QueryRowContext(ctx, q, id, ownerID).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.MarkdownEnabled,
		&n.ImageURL, &n.AudioURL, &n.DrawingData, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoteNotFound
	}
	return err
}
