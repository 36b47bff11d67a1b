package message

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadmessenger/outreach-api/internal/model"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
)

type fakeMessageRepo struct {
	messages    map[uuid.UUID]*model.Message
	order       []uuid.UUID
	markSentErr error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[uuid.UUID]*model.Message{}}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *model.Message) error {
	msg.CreatedAt = time.Now()
	r.messages[msg.ID] = msg
	r.order = append(r.order, msg.ID)
	return nil
}

func (r *fakeMessageRepo) CreateBatch(ctx context.Context, msgs []*model.Message) error {
	for _, msg := range msgs {
		if err := r.Create(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMessageRepo) Get(_ context.Context, ownerID, id uuid.UUID) (*model.Message, error) {
	msg, ok := r.messages[id]
	if !ok || msg.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	return msg, nil
}

func (r *fakeMessageRepo) GetByProviderID(_ context.Context, providerID string) (*model.Message, error) {
	for _, msg := range r.messages {
		if msg.ProviderID == providerID && providerID != "" {
			return msg, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeMessageRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	msg, ok := r.messages[id]
	if !ok || msg.OwnerID != ownerID {
		return sql.ErrNoRows
	}
	delete(r.messages, id)
	return nil
}

func (r *fakeMessageRepo) List(_ context.Context, ownerID uuid.UUID, f *model.MessageFilters) ([]*model.Message, error) {
	var out []*model.Message
	for _, id := range r.order {
		msg, ok := r.messages[id]
		if !ok || msg.OwnerID != ownerID {
			continue
		}
		if f.Status != "" && string(msg.Status) != f.Status {
			continue
		}
		if f.Channel != "" && string(msg.Channel) != f.Channel {
			continue
		}
		if f.ContactID != "" && msg.ContactID.String() != f.ContactID {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func (r *fakeMessageRepo) ListRecentByContact(_ context.Context, ownerID, contactID uuid.UUID, limit int) ([]*model.Message, error) {
	var out []*model.Message
	for _, msg := range r.messages {
		if msg.OwnerID == ownerID && msg.ContactID == contactID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkSent(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	if r.markSentErr != nil {
		return r.markSentErr
	}
	msg, ok := r.messages[id]
	if !ok {
		return sql.ErrNoRows
	}
	msg.Status = model.MessageStatusSent
	msg.SentAt = &sentAt
	return nil
}

func (r *fakeMessageRepo) MarkSentBatch(ctx context.Context, ids []uuid.UUID, sentAt time.Time) error {
	for _, id := range ids {
		if err := r.MarkSent(ctx, id, sentAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMessageRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.MessageStatus) error {
	msg, ok := r.messages[id]
	if !ok {
		return sql.ErrNoRows
	}
	msg.Status = status
	return nil
}

// fakeContactLookup only implements the contact reads the message service
// needs; writes are not used here.
type fakeContactLookup struct {
	contacts map[uuid.UUID]*model.Contact
}

func newFakeContactLookup() *fakeContactLookup {
	return &fakeContactLookup{contacts: map[uuid.UUID]*model.Contact{}}
}

func (r *fakeContactLookup) add(ownerID uuid.UUID) *model.Contact {
	c := &model.Contact{ID: uuid.New(), OwnerID: ownerID, Email: "c@example.com"}
	r.contacts[c.ID] = c
	return c
}

func (r *fakeContactLookup) Create(_ context.Context, c *model.Contact) error {
	r.contacts[c.ID] = c
	return nil
}

func (r *fakeContactLookup) CreateBatch(_ context.Context, cs []*model.Contact) error {
	for _, c := range cs {
		r.contacts[c.ID] = c
	}
	return nil
}

func (r *fakeContactLookup) Get(_ context.Context, ownerID, id uuid.UUID) (*model.Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (r *fakeContactLookup) Update(_ context.Context, c *model.Contact) error { return nil }

func (r *fakeContactLookup) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	delete(r.contacts, id)
	return nil
}

func (r *fakeContactLookup) List(_ context.Context, ownerID uuid.UUID, f *model.ContactFilters) ([]*model.Contact, int, error) {
	return nil, 0, nil
}

func (r *fakeContactLookup) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	return len(r.contacts), nil
}

func TestCreateMessageQueuedThenSent(t *testing.T) {
	msgRepo := newFakeMessageRepo()
	contacts := newFakeContactLookup()
	svc := NewService(msgRepo, contacts, nil, nil)

	ownerID := uuid.New()
	contact := contacts.add(ownerID)

	msg, err := svc.Create(context.Background(), ownerID, &model.CreateMessageRequest{
		ContactID: contact.ID.String(),
		Channel:   "email",
		Subject:   "Hello",
		Body:      "Hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusSent, msg.Status)
	require.NotNil(t, msg.SentAt)

	stored := msgRepo.messages[msg.ID]
	assert.Equal(t, model.MessageStatusSent, stored.Status)
}

func TestCreateMessageDispatchFailure(t *testing.T) {
	msgRepo := newFakeMessageRepo()
	msgRepo.markSentErr = errors.New("db down")
	contacts := newFakeContactLookup()
	svc := NewService(msgRepo, contacts, nil, nil)

	ownerID := uuid.New()
	contact := contacts.add(ownerID)

	_, err := svc.Create(context.Background(), ownerID, &model.CreateMessageRequest{
		ContactID: contact.ID.String(),
		Channel:   "email",
		Body:      "Hi",
	})
	require.Error(t, err, "a failed dispatch update must not report success")
	assert.ErrorContains(t, err, "db down")

	require.Len(t, msgRepo.messages, 1)
	for _, stored := range msgRepo.messages {
		assert.Equal(t, model.MessageStatusQueued, stored.Status)
		assert.Nil(t, stored.SentAt)
	}
}

func TestCreateMessageUnknownContact(t *testing.T) {
	svc := NewService(newFakeMessageRepo(), newFakeContactLookup(), nil, nil)

	missing := uuid.New()
	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateMessageRequest{
		ContactID: missing.String(),
		Channel:   "email",
		Body:      "Hi",
	})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, missing.String())
}

func TestCreateMessageInvalidChannel(t *testing.T) {
	contacts := newFakeContactLookup()
	svc := NewService(newFakeMessageRepo(), contacts, nil, nil)
	ownerID := uuid.New()
	contact := contacts.add(ownerID)

	_, err := svc.Create(context.Background(), ownerID, &model.CreateMessageRequest{
		ContactID: contact.ID.String(),
		Channel:   "fax",
		Body:      "Hi",
	})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreateBulkAllOrNothing(t *testing.T) {
	msgRepo := newFakeMessageRepo()
	contacts := newFakeContactLookup()
	svc := NewService(msgRepo, contacts, nil, nil)

	ownerID := uuid.New()
	good := contacts.add(ownerID)
	missing := uuid.New()

	_, err := svc.CreateBulk(context.Background(), ownerID, []*model.CreateMessageRequest{
		{ContactID: good.ID.String(), Channel: "email", Body: "Hi"},
		{ContactID: missing.String(), Channel: "email", Body: "Hi"},
	})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, missing.String(), "error names the offending contact")
	assert.Empty(t, msgRepo.messages, "no messages persisted when any contact is unknown")
}

func TestCreateBulkSendsAll(t *testing.T) {
	msgRepo := newFakeMessageRepo()
	contacts := newFakeContactLookup()
	svc := NewService(msgRepo, contacts, nil, nil)

	ownerID := uuid.New()
	a := contacts.add(ownerID)
	b := contacts.add(ownerID)

	msgs, err := svc.CreateBulk(context.Background(), ownerID, []*model.CreateMessageRequest{
		{ContactID: a.ID.String(), Channel: "email", Body: "Hi"},
		{ContactID: b.ID.String(), Channel: "sms", Body: "Hi"},
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, msg := range msgs {
		assert.Equal(t, model.MessageStatusSent, msg.Status)
		assert.NotNil(t, msg.SentAt)
	}
}

func TestPreview(t *testing.T) {
	msgRepo := newFakeMessageRepo()
	contacts := newFakeContactLookup()
	svc := NewService(msgRepo, contacts, nil, nil)

	ownerID := uuid.New()
	contact := contacts.add(ownerID)

	for i := 0; i < 8; i++ {
		_, err := svc.Create(context.Background(), ownerID, &model.CreateMessageRequest{
			ContactID: contact.ID.String(),
			Channel:   "email",
			Body:      "Hi",
		})
		require.NoError(t, err)
	}

	preview, err := svc.Preview(context.Background(), ownerID, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, contact.ID, preview.Contact.ID)
	assert.Len(t, preview.RecentMessages, 5, "preview is capped at the five most recent messages")
}

func TestPreviewUnknownContact(t *testing.T) {
	svc := NewService(newFakeMessageRepo(), newFakeContactLookup(), nil, nil)

	_, err := svc.Preview(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
