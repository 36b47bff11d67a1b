package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Channel is the outreach medium for a template or message.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsapp Channel = "whatsapp"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWhatsapp:
		return true
	}
	return false
}

type Template struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	OwnerID    uuid.UUID      `db:"owner_id" json:"owner_id"`
	Name       string         `db:"name" json:"name"`
	Channel    Channel        `db:"channel" json:"channel"`
	Subject    string         `db:"subject" json:"subject"`
	Body       string         `db:"body" json:"body"`
	Category   string         `db:"category" json:"category"`
	Variables  pq.StringArray `db:"variables" json:"variables"`
	UsageCount int            `db:"usage_count" json:"usage_count"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

type CreateTemplateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Channel   string   `json:"channel" binding:"required,outreach_channel"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body" binding:"required"`
	Category  string   `json:"category"`
	Variables []string `json:"variables"`
}

// UpdateTemplateRequest is a partial update; nil fields are left untouched.
type UpdateTemplateRequest struct {
	Name      *string   `json:"name"`
	Channel   *string   `json:"channel"`
	Subject   *string   `json:"subject"`
	Body      *string   `json:"body"`
	Category  *string   `json:"category"`
	Variables *[]string `json:"variables"`
}
