package carousel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/carousel-generator/internal/api/respond"
	"github.com/aliskhannn/carousel-generator/internal/model"
	"github.com/aliskhannn/carousel-generator/internal/storage/file"
)

// service defines the interface for carousel operations.
type service interface {
	Generate(ctx context.Context, req model.CarouselRequest) ([]byte, error)
	Enqueue(ctx context.Context, postID string, req model.CarouselRequest) (model.GenerationTask, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// Handler provides HTTP handlers for carousel endpoints.
// It depends on a service interface to run the generation pipeline.
type Handler struct {
	service service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(s service) *Handler {
	return &Handler{service: s}
}

// GenerateRequest is the wire form of a generation call.
type GenerateRequest struct {
	Title  string        `json:"title"`
	Slides []model.Slide `json:"slides"`
	Style  string        `json:"style"`
	PostID string        `json:"post_id"`
}

func (r GenerateRequest) carousel() model.CarouselRequest {
	return model.CarouselRequest{Title: r.Title, Slides: r.Slides, Style: r.Style}
}

// Generate handles the synchronous endpoint. It runs the whole pipeline in
// the request and sends the finished PDF back as a download.
func (h *Handler) Generate(c *ginext.Context) {
	req, ok := h.decode(c)
	if !ok {
		return
	}

	zlog.Logger.Info().
		Str("title", req.Title).
		Int("slides", len(req.Slides)).
		Msg("carousel requested")

	data, err := h.service.Generate(c.Request.Context(), req.carousel())
	if err != nil {
		zlog.Logger.Err(err).Msg("failed to generate carousel")
		respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("failed to generate carousel"))
		return
	}

	filename := fmt.Sprintf("carousel_%s.pdf", uuid.New().String()[:8])
	respond.PDF(c, http.StatusOK, filename, data)
}

// Enqueue handles the asynchronous endpoint. The request is queued and the
// client gets the task id to find the stored document later.
func (h *Handler) Enqueue(c *ginext.Context) {
	req, ok := h.decode(c)
	if !ok {
		return
	}

	task, err := h.service.Enqueue(c.Request.Context(), req.PostID, req.carousel())
	if err != nil {
		zlog.Logger.Err(err).Msg("failed to enqueue generation task")
		respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("failed to enqueue generation task"))
		return
	}

	respond.Accepted(c, map[string]interface{}{
		"task_id": task.ID,
		"post_id": task.PostID,
	})
}

// Download serves a stored carousel document by its object key.
func (h *Handler) Download(c *ginext.Context) {
	key := objectKey(c)
	if key == "" {
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("missing object key"))
		return
	}

	reader, err := h.service.Download(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, file.ErrObjectNotFound) {
			respond.Fail(c, http.StatusNotFound, fmt.Errorf("carousel not found"))
			return
		}

		zlog.Logger.Err(err).Str("key", key).Msg("failed to load carousel")
		respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("failed to load carousel"))
		return
	}
	defer reader.Close()

	respond.PDFStream(c, http.StatusOK, reader)
}

// Remove deletes a stored carousel document by its object key.
func (h *Handler) Remove(c *ginext.Context) {
	key := objectKey(c)
	if key == "" {
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("missing object key"))
		return
	}

	if err := h.service.Remove(c.Request.Context(), key); err != nil {
		zlog.Logger.Err(err).Str("key", key).Msg("failed to delete carousel")
		respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("failed to delete carousel"))
		return
	}

	c.Status(http.StatusNoContent)
}

// objectKey reads the wildcard path parameter carrying the storage key.
func objectKey(c *ginext.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}

// decode reads and validates the request body.
func (h *Handler) decode(c *ginext.Context) (GenerateRequest, bool) {
	var req GenerateRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Err(err).Msg("failed to decode request body")
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return GenerateRequest{}, false
	}

	if req.Title == "" {
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("title is required"))
		return GenerateRequest{}, false
	}

	return req, true
}
