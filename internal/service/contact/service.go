package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
	"github.com/leadmessenger/outreach-api/pkg/metrics"
)

type Service struct {
	repo        repository.ContactRepository
	maxContacts int
	metrics     *metrics.Metrics
}

func NewService(repo repository.ContactRepository, maxContacts int, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		maxContacts: maxContacts,
		metrics:     m,
	}
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, f *model.ContactFilters) (*model.ContactList, error) {
	f.Normalize()

	contacts, total, err := s.repo.List(ctx, ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return &model.ContactList{
		Contacts: contacts,
		Total:    total,
		Page:     f.Page,
		PerPage:  f.PerPage,
	}, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Contact, error) {
	contact, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("contact")
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateContactRequest) (*model.Contact, error) {
	status := model.ContactStatusProspect
	if req.Status != "" {
		status = model.ContactStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid contact status %q", req.Status))
		}
	}

	// Soft quota: the check is not atomic with the insert and may overshoot
	// slightly under concurrent creates.
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	if count >= s.maxContacts {
		return nil, apperrors.LimitExceeded("contact limit reached")
	}

	contact := &model.Contact{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Phone:     req.Phone,
		Linkedin:  req.Linkedin,
		Tags:      req.Tags,
		Status:    status,
		Source:    req.Source,
	}
	if contact.Tags == nil {
		contact.Tags = []string{}
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateContactRequest) (*model.Contact, error) {
	contact, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Company != nil {
		contact.Company = *req.Company
	}
	if req.Position != nil {
		contact.Position = *req.Position
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Linkedin != nil {
		contact.Linkedin = *req.Linkedin
	}
	if req.Tags != nil {
		contact.Tags = *req.Tags
	}
	if req.Status != nil {
		status := model.ContactStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid contact status %q", *req.Status))
		}
		contact.Status = status
	}
	if req.Source != nil {
		contact.Source = *req.Source
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
