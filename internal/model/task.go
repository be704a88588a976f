package model

import "github.com/google/uuid"

// GenerationTask represents a carousel generation job that will be sent to the queue.
type GenerationTask struct {
	ID      uuid.UUID       `json:"id"`
	PostID  string          `json:"post_id"` // owning post, used as the storage key prefix
	Request CarouselRequest `json:"request"`
}
