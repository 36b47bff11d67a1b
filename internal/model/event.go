package model

import (
	"time"

	"github.com/google/uuid"
)

// EventKind classifies an inbound provider event.
type EventKind string

const (
	EventKindOpen     EventKind = "open"
	EventKindClick    EventKind = "click"
	EventKindReply    EventKind = "reply"
	EventKindBounce   EventKind = "bounce"
	EventKindDelivery EventKind = "delivery"
)

func (k EventKind) IsValid() bool {
	switch k {
	case EventKindOpen, EventKindClick, EventKindReply, EventKindBounce, EventKindDelivery:
		return true
	}
	return false
}

// Event is an append-only record tied to a message. Rows are created by
// inbound provider webhooks and never mutated.
type Event struct {
	ID        int64     `db:"id" json:"id"`
	MessageID uuid.UUID `db:"message_id" json:"message_id"`
	Kind      EventKind `db:"kind" json:"kind"`
	Meta      string    `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProviderEventRequest is the payload contract for provider webhooks.
type ProviderEventRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
	Kind       string `json:"kind" binding:"required"`
	Meta       string `json:"meta"`
}
