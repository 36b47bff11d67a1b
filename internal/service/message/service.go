package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
	"github.com/leadmessenger/outreach-api/pkg/messaging"
	"github.com/leadmessenger/outreach-api/pkg/metrics"
)

const recentMessageLimit = 5

// ChannelMessageSent is the broker channel for sent-message notifications.
const ChannelMessageSent = "message.sent"

type Service struct {
	repo        repository.MessageRepository
	contactRepo repository.ContactRepository
	broker      messaging.Broker
	metrics     *metrics.Metrics
}

func NewService(repo repository.MessageRepository, contactRepo repository.ContactRepository, broker messaging.Broker, m *metrics.Metrics) *Service {
	if broker == nil {
		broker = messaging.NoopBroker{}
	}
	return &Service{
		repo:        repo,
		contactRepo: contactRepo,
		broker:      broker,
		metrics:     m,
	}
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, f *model.MessageFilters) ([]*model.Message, error) {
	msgs, err := s.repo.List(ctx, ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Message, error) {
	msg, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("message")
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

// Create persists the message in the "queued" state, then synchronously
// marks it sent. The two-step transition stands in for a real provider
// dispatch; the intermediate queued row is observable to concurrent readers.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateMessageRequest) (*model.Message, error) {
	msg, err := s.buildMessage(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.markSent(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateBulk validates every contact reference before creating any row; a
// single miss fails the whole batch. Accepted messages are queued in one
// transaction and marked sent as a second pass over the batch.
func (s *Service) CreateBulk(ctx context.Context, ownerID uuid.UUID, reqs []*model.CreateMessageRequest) ([]*model.Message, error) {
	msgs := make([]*model.Message, 0, len(reqs))
	for _, req := range reqs {
		msg, err := s.buildMessage(ctx, ownerID, req)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	if err := s.repo.CreateBatch(ctx, msgs); err != nil {
		return nil, fmt.Errorf("failed to create messages: %w", err)
	}

	ids := make([]uuid.UUID, len(msgs))
	for i, msg := range msgs {
		ids[i] = msg.ID
	}
	sentAt := time.Now()
	if err := s.repo.MarkSentBatch(ctx, ids, sentAt); err != nil {
		return nil, fmt.Errorf("failed to mark messages sent: %w", err)
	}
	for _, msg := range msgs {
		msg.Status = model.MessageStatusSent
		at := sentAt
		msg.SentAt = &at
		s.publishSent(ctx, msg)
	}

	return msgs, nil
}

func (s *Service) Preview(ctx context.Context, ownerID, contactID uuid.UUID) (*model.MessagePreview, error) {
	contact, err := s.contactRepo.Get(ctx, ownerID, contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("contact")
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	recent, err := s.repo.ListRecentByContact(ctx, ownerID, contactID, recentMessageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}

	return &model.MessagePreview{
		Contact:        contact,
		RecentMessages: recent,
	}, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// buildMessage validates the contact reference (owner-scoped) and shapes a
// queued message.
func (s *Service) buildMessage(ctx context.Context, ownerID uuid.UUID, req *model.CreateMessageRequest) (*model.Message, error) {
	channel := model.Channel(req.Channel)
	if !channel.IsValid() {
		return nil, apperrors.Validation("invalid channel. Must be email, sms, or whatsapp")
	}

	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		return nil, apperrors.NotFoundf("contact %s not found", req.ContactID)
	}
	if _, err := s.contactRepo.Get(ctx, ownerID, contactID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("contact %s not found", req.ContactID)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return &model.Message{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		ContactID: contactID,
		Channel:   channel,
		Subject:   req.Subject,
		Body:      req.Body,
		// The dispatch stub mints the provider reference itself; a real
		// integration stores the id the provider returns.
		ProviderID:  uuid.New().String(),
		Status:      model.MessageStatusQueued,
		ScheduledAt: req.ScheduledAt,
	}, nil
}

// markSent is the synchronous dispatch stub. A real provider integration
// replaces this with an asynchronous path but must keep the queued → sent
// state contract.
func (s *Service) markSent(ctx context.Context, msg *model.Message) error {
	sentAt := time.Now()
	if err := s.repo.MarkSent(ctx, msg.ID, sentAt); err != nil {
		return fmt.Errorf("failed to mark message sent: %w", err)
	}
	msg.Status = model.MessageStatusSent
	msg.SentAt = &sentAt
	s.publishSent(ctx, msg)
	return nil
}

// publishSent notifies the broker, best-effort; a publish failure never
// fails the request.
func (s *Service) publishSent(ctx context.Context, msg *model.Message) {
	if s.metrics != nil {
		s.metrics.MessagesSent.WithLabelValues(string(msg.Channel)).Inc()
	}
	status := "ok"
	if err := s.broker.Publish(ctx, ChannelMessageSent, msg); err != nil {
		status = "error"
		log.Warn().Err(err).Str("message_id", msg.ID.String()).Msg("failed to publish sent notification")
	}
	if s.metrics != nil {
		s.metrics.BrokerPublishes.WithLabelValues(ChannelMessageSent, status).Inc()
	}
}
