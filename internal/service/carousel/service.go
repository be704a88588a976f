package carousel

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/carousel-generator/internal/compose"
	"github.com/aliskhannn/carousel-generator/internal/model"
	"github.com/aliskhannn/carousel-generator/internal/planner"
	"github.com/aliskhannn/carousel-generator/internal/styles"
	"github.com/aliskhannn/carousel-generator/internal/translate"
)

// fetcher defines the interface for resolving planned asset jobs into image bytes.
type fetcher interface {
	FetchAll(ctx context.Context, jobs []planner.Job) map[string][]byte
}

// translator defines the interface for translating display titles in one batch.
type translator interface {
	TranslateTitles(ctx context.Context, coverTitle string, slides []model.Slide) translate.Titles
}

// composer defines the interface for laying a carousel out into page draw lists.
type composer interface {
	Compose(req model.CarouselRequest, style styles.Spec, images map[string][]byte, titles translate.Titles) compose.Document
}

// assembler defines the interface for rendering a composed document into PDF bytes.
type assembler interface {
	Assemble(doc compose.Document) ([]byte, error)
}

// fileStorage defines the interface for persisting finished documents.
type fileStorage interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Load(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// producer defines the interface for enqueueing generation tasks into a message broker.
type producer interface {
	Produce(ctx context.Context, task model.GenerationTask) error
}

// Service runs the generation pipeline: plan asset jobs, fetch images in
// parallel, translate titles for bilingual decks, compose pages, and render
// the final PDF.
type Service struct {
	fetcher    fetcher
	translator translator
	composer   composer
	assembler  assembler
	storage    fileStorage
	producer   producer
}

// NewService creates a new Service with the given pipeline stages.
func NewService(f fetcher, t translator, c composer, a assembler, fs fileStorage, p producer) *Service {
	return &Service{
		fetcher:    f,
		translator: t,
		composer:   c,
		assembler:  a,
		storage:    fs,
		producer:   p,
	}
}

// Generate builds the finished PDF for one request. Failed asset fetches
// degrade to placeholder art and failed translations fall back to source
// titles, so only serialization of the final document can fail the call.
func (s *Service) Generate(ctx context.Context, req model.CarouselRequest) ([]byte, error) {
	style := styles.Resolve(req.Style)

	zlog.Logger.Info().
		Str("title", req.Title).
		Str("style", style.Name).
		Int("slides", len(req.Slides)).
		Bool("bilingual", req.Bilingual()).
		Msg("generating carousel")

	// Fetch all assets up front; the composer fills any gaps with
	// placeholder art.
	jobs := planner.Build(req, style)
	images := s.fetcher.FetchAll(ctx, jobs)

	var titles translate.Titles
	if req.Bilingual() {
		titles = s.translator.TranslateTitles(ctx, compose.CoverTitle(req.Title), req.Slides)
	}

	doc := s.composer.Compose(req, style, images, titles)

	data, err := s.assembler.Assemble(doc)
	if err != nil {
		return nil, fmt.Errorf("generate: failed to assemble pdf: %w", err)
	}

	zlog.Logger.Info().
		Int("pages", len(doc.Pages)).
		Int("size", len(data)).
		Msg("carousel assembled")

	return data, nil
}

// GenerateToStorage runs the pipeline for a queued task and uploads the
// result. Returns the public URL of the stored document.
func (s *Service) GenerateToStorage(ctx context.Context, task model.GenerationTask) (string, error) {
	data, err := s.Generate(ctx, task.Request)
	if err != nil {
		return "", fmt.Errorf("task %s: %w", task.ID, err)
	}

	url, err := s.storage.Save(ctx, ObjectKey(task), "application/pdf", data)
	if err != nil {
		return "", fmt.Errorf("task %s: failed to save pdf: %w", task.ID, err)
	}
	return url, nil
}

// Download streams a stored carousel document back from object storage.
func (s *Service) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.storage.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	return reader, nil
}

// Remove deletes a stored carousel document.
func (s *Service) Remove(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Enqueue queues a request for asynchronous generation and returns the task
// that was sent.
func (s *Service) Enqueue(ctx context.Context, postID string, req model.CarouselRequest) (model.GenerationTask, error) {
	task := model.GenerationTask{
		ID:      uuid.New(),
		PostID:  postID,
		Request: req,
	}

	if err := s.producer.Produce(ctx, task); err != nil {
		return model.GenerationTask{}, fmt.Errorf("enqueue: failed to send task: %w", err)
	}
	return task, nil
}

// ObjectKey builds the storage key for a task's document:
// <post-id>/carousel_<timestamp>_<id8>.pdf. Tasks without a post id are
// filed under the task id instead.
func ObjectKey(task model.GenerationTask) string {
	folder := task.PostID
	if folder == "" {
		folder = task.ID.String()
	}
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s/carousel_%s_%s.pdf", folder, stamp, task.ID.String()[:8])
}
