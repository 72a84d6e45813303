package model

import "time"

// Note represents a note record in the `notes` table. Every note belongs
// to exactly one user; UserID is set at creation and never changes. The
// attachment fields are opaque strings (URLs or serialized blobs) supplied
// by the client and are nullable in the database, hence the pointers.
//
// Fields:
//  ID              – primary key identifier of the note.
//  UserID          – references users.id of the owner.
//  Title           – note title.
//  Content         – note body.
//  MarkdownEnabled – whether the client should render Content as markdown.
//  ImageURL        – optional image attachment reference.
//  AudioURL        – optional audio attachment reference.
//  DrawingData     – optional serialized drawing payload.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Note struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	MarkdownEnabled bool      `json:"markdown_enabled"`
	ImageURL        *string   `json:"image_url"`
	AudioURL        *string   `json:"audio_url"`
	DrawingData     *string   `json:"drawing_data"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
