// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue name for note lifecycle events.
const NoteActivityQueue = "note.activity"

// Actions carried by a NoteEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// NoteEvent is published whenever a note is created, updated or deleted.
// It contains enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type NoteEvent struct {
	Action     string `json:"action"`
	NoteID     uint64 `json:"note_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	OccurredAt string `json:"occurred_at"`
}
