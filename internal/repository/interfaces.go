package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/model"
)

// All repository interfaces in one file. Every lookup that takes an ownerID
// is owner-scoped: a row belonging to another owner behaves as missing.
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	ContactRepository interface {
		Create(ctx context.Context, contact *model.Contact) error
		CreateBatch(ctx context.Context, contacts []*model.Contact) error
		Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Contact, error)
		Update(ctx context.Context, contact *model.Contact) error
		// Delete removes the contact and nullifies task references in the
		// same transaction; dependent messages cascade at the schema level.
		Delete(ctx context.Context, ownerID, id uuid.UUID) error
		List(ctx context.Context, ownerID uuid.UUID, f *model.ContactFilters) ([]*model.Contact, int, error)
		CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	}

	TemplateRepository interface {
		Create(ctx context.Context, tmpl *model.Template) error
		Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Template, error)
		Update(ctx context.Context, tmpl *model.Template) error
		Delete(ctx context.Context, ownerID, id uuid.UUID) error
		List(ctx context.Context, ownerID uuid.UUID) ([]*model.Template, error)
	}

	TaskRepository interface {
		Create(ctx context.Context, task *model.Task) error
		Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Task, error)
		Update(ctx context.Context, task *model.Task) error
		Delete(ctx context.Context, ownerID, id uuid.UUID) error
		List(ctx context.Context, ownerID uuid.UUID, f *model.TaskFilters) ([]*model.Task, error)
	}

	MessageRepository interface {
		Create(ctx context.Context, msg *model.Message) error
		// CreateBatch inserts all messages in one transaction.
		CreateBatch(ctx context.Context, msgs []*model.Message) error
		Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Message, error)
		GetByProviderID(ctx context.Context, providerID string) (*model.Message, error)
		Delete(ctx context.Context, ownerID, id uuid.UUID) error
		List(ctx context.Context, ownerID uuid.UUID, f *model.MessageFilters) ([]*model.Message, error)
		ListRecentByContact(ctx context.Context, ownerID, contactID uuid.UUID, limit int) ([]*model.Message, error)
		MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
		MarkSentBatch(ctx context.Context, ids []uuid.UUID, sentAt time.Time) error
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.MessageStatus) error
	}

	EventRepository interface {
		Create(ctx context.Context, event *model.Event) error
		ListByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.Event, error)
	}
)
