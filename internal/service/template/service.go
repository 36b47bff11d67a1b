package template

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
)

type Service struct {
	repo repository.TemplateRepository
}

func NewService(repo repository.TemplateRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*model.Template, error) {
	templates, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Template, error) {
	tmpl, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("template")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return tmpl, nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateTemplateRequest) (*model.Template, error) {
	channel := model.Channel(req.Channel)
	if !channel.IsValid() {
		return nil, apperrors.Validation("invalid channel. Must be email, sms, or whatsapp")
	}
	if channel == model.ChannelEmail && req.Subject == "" {
		return nil, apperrors.Validation("subject is required for email templates")
	}

	tmpl := &model.Template{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Channel:   channel,
		Subject:   req.Subject,
		Body:      req.Body,
		Category:  req.Category,
		Variables: req.Variables,
	}
	if tmpl.Variables == nil {
		tmpl.Variables = []string{}
	}

	if err := s.repo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return tmpl, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateTemplateRequest) (*model.Template, error) {
	tmpl, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// The email-subject rule is checked against the merge of the incoming
	// partial update and the persisted row: subject cannot be cleared while
	// the channel remains or becomes email.
	channel := tmpl.Channel
	if req.Channel != nil {
		channel = model.Channel(*req.Channel)
		if !channel.IsValid() {
			return nil, apperrors.Validation("invalid channel. Must be email, sms, or whatsapp")
		}
	}
	subject := tmpl.Subject
	if req.Subject != nil {
		subject = *req.Subject
	}
	if channel == model.ChannelEmail && subject == "" {
		return nil, apperrors.Validation("subject is required for email templates")
	}

	tmpl.Channel = channel
	tmpl.Subject = subject
	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.Body != nil {
		tmpl.Body = *req.Body
	}
	if req.Category != nil {
		tmpl.Category = *req.Category
	}
	if req.Variables != nil {
		tmpl.Variables = *req.Variables
	}

	if err := s.repo.Update(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return tmpl, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}
