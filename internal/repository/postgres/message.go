package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
)

type messageRepository struct {
	BaseRepository
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{NewBaseRepository(db)}
}

const insertMessage = `
	INSERT INTO messages (
		id, owner_id, contact_id, channel, subject, body, provider_id,
		status, scheduled_at, sent_at, error, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	msg.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, insertMessage,
		msg.ID,
		msg.OwnerID,
		msg.ContactID,
		msg.Channel,
		msg.Subject,
		msg.Body,
		msg.ProviderID,
		msg.Status,
		msg.ScheduledAt,
		msg.SentAt,
		msg.Error,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) CreateBatch(ctx context.Context, msgs []*model.Message) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		for _, msg := range msgs {
			msg.CreatedAt = now
			if _, err := tx.ExecContext(ctx, insertMessage,
				msg.ID,
				msg.OwnerID,
				msg.ContactID,
				msg.Channel,
				msg.Subject,
				msg.Body,
				msg.ProviderID,
				msg.Status,
				msg.ScheduledAt,
				msg.SentAt,
				msg.Error,
				msg.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert message for contact %s: %w", msg.ContactID, err)
			}
		}
		return nil
	})
}

func (r *messageRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Message, error) {
	query := `SELECT * FROM messages WHERE id = $1 AND owner_id = $2`
	var msg model.Message
	if err := r.db.GetContext(ctx, &msg, query, id, ownerID); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) GetByProviderID(ctx context.Context, providerID string) (*model.Message, error) {
	query := `SELECT * FROM messages WHERE provider_id = $1`
	var msg model.Message
	if err := r.db.GetContext(ctx, &msg, query, providerID); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM messages WHERE id = $1 AND owner_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, ownerID)
	return err
}

func (r *messageRepository) List(ctx context.Context, ownerID uuid.UUID, f *model.MessageFilters) ([]*model.Message, error) {
	where := `WHERE owner_id = $1`
	args := []interface{}{ownerID}

	if f.ContactID != "" {
		args = append(args, f.ContactID)
		where += fmt.Sprintf(` AND contact_id = $%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if f.Channel != "" {
		args = append(args, f.Channel)
		where += fmt.Sprintf(` AND channel = $%d`, len(args))
	}

	query := `SELECT * FROM messages ` + where + ` ORDER BY created_at DESC`
	msgs := []*model.Message{}
	if err := r.db.SelectContext(ctx, &msgs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (r *messageRepository) ListRecentByContact(ctx context.Context, ownerID, contactID uuid.UUID, limit int) ([]*model.Message, error) {
	query := `
		SELECT * FROM messages
		WHERE owner_id = $1 AND contact_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	msgs := []*model.Message{}
	err := r.db.SelectContext(ctx, &msgs, query, ownerID, contactID, limit)
	return msgs, err
}

func (r *messageRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `UPDATE messages SET status = $1, sent_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, model.MessageStatusSent, sentAt, id)
	return err
}

func (r *messageRepository) MarkSentBatch(ctx context.Context, ids []uuid.UUID, sentAt time.Time) error {
	query := `UPDATE messages SET status = $1, sent_at = $2 WHERE id = ANY($3)`
	_, err := r.db.ExecContext(ctx, query, model.MessageStatusSent, sentAt, pq.Array(ids))
	return err
}

func (r *messageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MessageStatus) error {
	query := `UPDATE messages SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}
