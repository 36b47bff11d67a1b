package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageStatus follows queued → sent → {delivered, bounced, replied},
// with sent → failed on a provider error. Transitions past "sent" are
// driven by inbound provider events.
type MessageStatus string

const (
	MessageStatusQueued    MessageStatus = "queued"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusBounced   MessageStatus = "bounced"
	MessageStatusFailed    MessageStatus = "failed"
	MessageStatusReplied   MessageStatus = "replied"
)

func (s MessageStatus) IsValid() bool {
	switch s {
	case MessageStatusQueued, MessageStatusSent, MessageStatusDelivered,
		MessageStatusBounced, MessageStatusFailed, MessageStatusReplied:
		return true
	}
	return false
}

type Message struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	OwnerID     uuid.UUID     `db:"owner_id" json:"owner_id"`
	ContactID   uuid.UUID     `db:"contact_id" json:"contact_id"`
	Channel     Channel       `db:"channel" json:"channel"`
	Subject     string        `db:"subject" json:"subject"`
	Body        string        `db:"body" json:"body"`
	ProviderID  string        `db:"provider_id" json:"provider_id,omitempty"`
	Status      MessageStatus `db:"status" json:"status"`
	ScheduledAt *time.Time    `db:"scheduled_at" json:"scheduled_at,omitempty"`
	SentAt      *time.Time    `db:"sent_at" json:"sent_at,omitempty"`
	Error       string        `db:"error" json:"error,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

type CreateMessageRequest struct {
	ContactID   string     `json:"contact_id" binding:"required"`
	Channel     string     `json:"channel" binding:"required,outreach_channel"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body" binding:"required"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type MessageFilters struct {
	ContactID string `form:"contact_id"`
	Status    string `form:"status"`
	Channel   string `form:"channel"`
}

// MessagePreview bundles a contact with its most recent messages.
type MessagePreview struct {
	Contact        *Contact   `json:"contact"`
	RecentMessages []*Message `json:"recent_messages"`
}
