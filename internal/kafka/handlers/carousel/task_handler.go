package carousel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/carousel-generator/internal/model"
)

// service defines the interface for generating carousels into storage.
type service interface {
	GenerateToStorage(ctx context.Context, task model.GenerationTask) (string, error)
}

// TaskHandler handles Kafka messages carrying queued generation tasks.
// It relies on a service that implements the generation pipeline.
type TaskHandler struct {
	service service
}

// NewTaskHandler creates a new handler with the given service.
func NewTaskHandler(s service) *TaskHandler {
	return &TaskHandler{service: s}
}

// Handle processes a Kafka message containing a generation task.
// It unmarshals the task, runs the pipeline through the service,
// and logs where the finished document was stored.
func (h *TaskHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var task model.GenerationTask
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		return fmt.Errorf("unmarshal task: %w", err)
	}

	url, err := h.service.GenerateToStorage(ctx, task)
	if err != nil {
		return fmt.Errorf("generate carousel: %w", err)
	}

	zlog.Logger.Info().
		Str("task_id", task.ID.String()).
		Str("url", url).
		Msg("carousel generated")

	return nil
}
