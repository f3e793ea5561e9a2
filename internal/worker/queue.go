package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const JobTypeDocument = "document"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type       string          `json:"type"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Payload    json.RawMessage `json:"payload"`
}

// DocumentJob asks the document generator to render the convention or
// amendment of a freshly committed version.
type DocumentJob struct {
	CompanyID    uuid.UUID `json:"company_id"`
	ConventionID uuid.UUID `json:"convention_id"`
	Version      int       `json:"version"`
	Statut       string    `json:"statut"`
}

// Dispatcher enqueues async jobs into Redis lists.
// Consumers live outside this service and dequeue with BRPOP.
type Dispatcher struct {
	rdb   *redis.Client
	queue string
}

func NewDispatcher(rdb *redis.Client, queue string) *Dispatcher {
	return &Dispatcher{rdb: rdb, queue: queue}
}

// EnqueueDocument pushes a document generation job to Redis.
func (d *Dispatcher) EnqueueDocument(ctx context.Context, job DocumentJob) error {
	return d.enqueue(ctx, JobTypeDocument, job)
}

func (d *Dispatcher) enqueue(ctx context.Context, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, EnqueuedAt: time.Now().UTC(), Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, d.queue, encoded).Err()
}
