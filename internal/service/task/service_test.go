package task

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadmessenger/outreach-api/internal/model"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
)

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*model.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*model.Task{}}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) Get(_ context.Context, ownerID, id uuid.UUID) (*model.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return sql.ErrNoRows
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return sql.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(_ context.Context, ownerID uuid.UUID, f *model.TaskFilters) ([]*model.Task, error) {
	var out []*model.Task
	for _, task := range r.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if f.Status != "" && string(task.Status) != f.Status {
			continue
		}
		if f.Type != "" && string(task.Type) != f.Type {
			continue
		}
		if f.Priority != "" && string(task.Priority) != f.Priority {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func TestCreateTaskDefaults(t *testing.T) {
	svc := NewService(newFakeTaskRepo())

	task, err := svc.Create(context.Background(), uuid.New(), &model.CreateTaskRequest{
		Title: "follow up with Jane",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskTypeFollowUp, task.Type)
	assert.Equal(t, model.TaskPriorityMedium, task.Priority)
	assert.Equal(t, model.TaskStatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestCreateTaskInvalidContactID(t *testing.T) {
	svc := NewService(newFakeTaskRepo())

	bad := "not-a-uuid"
	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateTaskRequest{
		Title:     "call",
		ContactID: &bad,
	})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestTaskStatusRoundTrip(t *testing.T) {
	svc := NewService(newFakeTaskRepo())
	ownerID := uuid.New()

	task, err := svc.Create(context.Background(), ownerID, &model.CreateTaskRequest{
		Title: "send intro email",
	})
	require.NoError(t, err)
	require.Nil(t, task.CompletedAt)

	// Completing the task stamps completed_at.
	completed, err := svc.SetStatus(context.Background(), ownerID, task.ID, model.TaskStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	// Reopening clears it again.
	reopened, err := svc.SetStatus(context.Background(), ownerID, task.ID, model.TaskStatusPending)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	// The cycle is repeatable.
	completed, err = svc.SetStatus(context.Background(), ownerID, task.ID, model.TaskStatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)
}

func TestUpdateTaskWithoutStatusKeepsCompletedAt(t *testing.T) {
	svc := NewService(newFakeTaskRepo())
	ownerID := uuid.New()

	task, err := svc.Create(context.Background(), ownerID, &model.CreateTaskRequest{
		Title:  "done already",
		Status: string(model.TaskStatusCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)

	newTitle := "done already (renamed)"
	updated, err := svc.Update(context.Background(), ownerID, task.ID, &model.UpdateTaskRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt, "status-less update must not touch completed_at")
	assert.Equal(t, newTitle, updated.Title)
}

func TestUpdateTaskClearsContact(t *testing.T) {
	svc := NewService(newFakeTaskRepo())
	ownerID := uuid.New()
	contactID := uuid.New().String()

	task, err := svc.Create(context.Background(), ownerID, &model.CreateTaskRequest{
		Title:     "call",
		ContactID: &contactID,
	})
	require.NoError(t, err)
	require.NotNil(t, task.ContactID)

	empty := ""
	updated, err := svc.Update(context.Background(), ownerID, task.ID, &model.UpdateTaskRequest{
		ContactID: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ContactID)
}

func TestListTasksFiltered(t *testing.T) {
	svc := NewService(newFakeTaskRepo())
	ownerID := uuid.New()

	_, err := svc.Create(context.Background(), ownerID, &model.CreateTaskRequest{
		Title:    "urgent call",
		Priority: string(model.TaskPriorityHigh),
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), ownerID, &model.CreateTaskRequest{
		Title: "someday",
	})
	require.NoError(t, err)

	high, err := svc.List(context.Background(), ownerID, &model.TaskFilters{
		Priority: string(model.TaskPriorityHigh),
	})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "urgent call", high[0].Title)
}
