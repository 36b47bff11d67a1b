package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
	"github.com/leadmessenger/outreach-api/pkg/messaging"
	"github.com/leadmessenger/outreach-api/pkg/metrics"
)

// ChannelMessageEvent is the broker channel for provider-event notifications.
const ChannelMessageEvent = "message.event"

// Service records inbound provider events against messages. Ingestion only:
// no signature verification, retries, or queueing.
type Service struct {
	repo    repository.EventRepository
	msgRepo repository.MessageRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
}

func NewService(repo repository.EventRepository, msgRepo repository.MessageRepository, broker messaging.Broker, m *metrics.Metrics) *Service {
	if broker == nil {
		broker = messaging.NoopBroker{}
	}
	return &Service{
		repo:    repo,
		msgRepo: msgRepo,
		broker:  broker,
		metrics: m,
	}
}

// RecordProviderEvent appends an event for the message matching the provider
// reference and advances the message status for terminal kinds.
func (s *Service) RecordProviderEvent(ctx context.Context, provider string, req *model.ProviderEventRequest) (*model.Event, error) {
	kind := model.EventKind(req.Kind)
	if !kind.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid event kind %q", req.Kind))
	}

	msg, err := s.msgRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("message")
		}
		return nil, fmt.Errorf("failed to look up message: %w", err)
	}

	evt := &model.Event{
		MessageID: msg.ID,
		Kind:      kind,
		Meta:      req.Meta,
	}
	if err := s.repo.Create(ctx, evt); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}

	if status, ok := statusForKind(kind); ok {
		if err := s.msgRepo.UpdateStatus(ctx, msg.ID, status); err != nil {
			return nil, fmt.Errorf("failed to update message status: %w", err)
		}
	}

	if s.metrics != nil {
		s.metrics.ProviderEvents.WithLabelValues(provider, string(kind)).Inc()
	}
	publishStatus := "ok"
	if err := s.broker.Publish(ctx, ChannelMessageEvent, evt); err != nil {
		publishStatus = "error"
		log.Warn().Err(err).Int64("event_id", evt.ID).Msg("failed to publish event notification")
	}
	if s.metrics != nil {
		s.metrics.BrokerPublishes.WithLabelValues(ChannelMessageEvent, publishStatus).Inc()
	}

	return evt, nil
}

// ListForMessage returns the events recorded against one of the owner's
// messages, oldest first.
func (s *Service) ListForMessage(ctx context.Context, ownerID, messageID uuid.UUID) ([]*model.Event, error) {
	if _, err := s.msgRepo.Get(ctx, ownerID, messageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("message")
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	events, err := s.repo.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// statusForKind maps terminal event kinds onto the message state machine;
// open and click leave the status untouched.
func statusForKind(kind model.EventKind) (model.MessageStatus, bool) {
	switch kind {
	case model.EventKindDelivery:
		return model.MessageStatusDelivered, true
	case model.EventKindBounce:
		return model.MessageStatusBounced, true
	case model.EventKindReply:
		return model.MessageStatusReplied, true
	}
	return "", false
}
