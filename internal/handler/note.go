package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/haivu/notehub/internal/config"
	"github.com/haivu/notehub/internal/middleware"
	"github.com/haivu/notehub/internal/model"
	"github.com/haivu/notehub/internal/queue"
	"github.com/haivu/notehub/internal/repository"
	queue_publisher "github.com/haivu/notehub/internal/service"
)

// NoteHandler bundles dependencies for note endpoints. All handlers run
// behind the JWT middleware and read the authenticated identity from the
// request context; the repository enforces ownership on every statement.
type NoteHandler struct {
	Cfg   config.Config
	Notes *repository.NoteRepo
}

func NewNoteHandler(cfg config.Config, n *repository.NoteRepo) *NoteHandler {
	return &NoteHandler{Cfg: cfg, Notes: n}
}

// noteReq carries the mutable note fields for create and update. The
// markdown flag is a pointer so an omitted value can default to true.
type noteReq struct {
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	MarkdownEnabled *bool   `json:"markdown_enabled"`
	ImageURL        *string `json:"image_url"`
	AudioURL        *string `json:"audio_url"`
	DrawingData     *string `json:"drawing_data"`
}

func (r noteReq) markdown() bool {
	if r.MarkdownEnabled == nil {
		return true
	}
	return *r.MarkdownEnabled
}

// List returns all notes owned by the caller, newest-created first.
func (h *NoteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notes, err := h.Notes.ListByOwner(ctx, middleware.UserID(c))
	if err != nil {
		log.Printf("notes: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, notes)
}

// Get returns a single owned note. A missing note and a note owned by
// someone else produce the same 404.
func (h *NoteHandler) Get(c echo.Context) error {
	id, ok := noteID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.GetByIDAndOwner(ctx, id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		log.Printf("notes: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, n)
}

// Create inserts a note owned by the caller and returns the full record
// including the server-assigned id and timestamps.
func (h *NoteHandler) Create(c echo.Context) error {
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n := &model.Note{
		UserID:          middleware.UserID(c),
		Title:           req.Title,
		Content:         req.Content,
		MarkdownEnabled: req.markdown(),
		ImageURL:        req.ImageURL,
		AudioURL:        req.AudioURL,
		DrawingData:     req.DrawingData,
	}
	if err := h.Notes.Create(ctx, n); err != nil {
		log.Printf("notes: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	h.publish(queue.ActionCreated, n)
	return c.JSON(http.StatusCreated, n)
}

// Update fully replaces the mutable fields of an owned note.
func (h *NoteHandler) Update(c echo.Context) error {
	id, ok := noteID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	}
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n := &model.Note{
		ID:              id,
		UserID:          middleware.UserID(c),
		Title:           req.Title,
		Content:         req.Content,
		MarkdownEnabled: req.markdown(),
		ImageURL:        req.ImageURL,
		AudioURL:        req.AudioURL,
		DrawingData:     req.DrawingData,
	}
	if err := h.Notes.Update(ctx, n); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		log.Printf("notes: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	h.publish(queue.ActionUpdated, n)
	return c.JSON(http.StatusOK, n)
}

// Delete removes an owned note and returns a confirmation, not the
// deleted record.
func (h *NoteHandler) Delete(c echo.Context) error {
	id, ok := noteID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ownerID := middleware.UserID(c)
	if err := h.Notes.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		log.Printf("notes: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	h.publish(queue.ActionDeleted, &model.Note{ID: id, UserID: ownerID})
	return c.JSON(http.StatusOK, echo.Map{"message": "note deleted"})
}

// noteID parses the :id path parameter. A non-numeric id is reported the
// same way as a missing note so the caller learns nothing from probing.
func noteID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// publish sends a note event in the background, best-effort. Failures are
// logged by the publisher and never affect the request outcome.
func (h *NoteHandler) publish(action string, n *model.Note) {
	if h.Cfg.AMQPURL == "" {
		return
	}
	ev := queue.NoteEvent{
		Action:     action,
		NoteID:     n.ID,
		UserID:     n.UserID,
		Title:      n.Title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishNoteEvent(ctx, h.Cfg.AMQPURL, ev)
	}()
}
