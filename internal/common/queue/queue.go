// internal/common/queue/queue.go

// Package queue provides the durable at-least-once handoff between the
// dialog front end and the suggestion worker. Ownership of a request
// transfers to the queue on Enqueue and to the consumer on Dequeue; a
// delivery that is never acknowledged becomes visible again after the
// visibility timeout.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"dining-concierge/internal/models"
)

// Delivery is one dequeued message plus the token needed to acknowledge it.
// Body is kept raw so the consumer can schema-check before decoding.
type Delivery struct {
	Token      string
	Body       json.RawMessage
	Attributes models.MessageAttributes
	Attempt    int

	// raw is the stored envelope, required for list removal on Ack.
	raw string
}

// RequestQueue is the durable FIFO handoff contract.
type RequestQueue interface {
	// Enqueue writes one validated request. Best effort: a transient
	// failure is returned to the caller, who decides whether it is fatal.
	Enqueue(ctx context.Context, req *models.ValidatedRequest, attrs models.MessageAttributes) error

	// Dequeue claims up to maxN messages, waiting at most wait for the
	// first one. The same logical request may be delivered more than once.
	Dequeue(ctx context.Context, maxN int, wait time.Duration) ([]Delivery, error)

	// Ack removes a claimed delivery. Without it the message is
	// redelivered once its visibility timeout lapses.
	Ack(ctx context.Context, d Delivery) error

	// Reclaim returns timed-out claims to the ready list and drops
	// messages past the attempt budget. Returns how many were requeued.
	Reclaim(ctx context.Context) (int, error)
}

// envelope is the stored message shape.
type envelope struct {
	Token      string                   `json:"token"`
	Attempt    int                      `json:"attempt"`
	EnqueuedAt time.Time                `json:"enqueuedAt"`
	Attributes models.MessageAttributes `json:"attributes"`
	Body       json.RawMessage          `json:"body"`
}
