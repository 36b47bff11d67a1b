package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
)

type eventRepository struct {
	BaseRepository
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{NewBaseRepository(db)}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (message_id, kind, meta, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	event.CreatedAt = time.Now()

	if err := r.db.QueryRowContext(ctx, query,
		event.MessageID,
		event.Kind,
		event.Meta,
		event.CreatedAt,
	).Scan(&event.ID); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) ListByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.Event, error) {
	query := `SELECT * FROM events WHERE message_id = $1 ORDER BY created_at ASC`
	events := []*model.Event{}
	err := r.db.SelectContext(ctx, &events, query, messageID)
	return events, err
}
