package service

import (
	"context"
	"time"
)

// Event is a domain occurrence published for downstream consumers.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	UID        string            `json:"uid,omitempty"`
	Payload    map[string]any    `json:"payload,omitempty"`
	Attributes map[string]string `json:"-"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// EventPublisher emits domain events. Implementations are selected by
// configuration; the noop publisher is used when none is configured.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
