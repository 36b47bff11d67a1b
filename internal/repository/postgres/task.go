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

type taskRepository struct {
	BaseRepository
}

func NewTaskRepository(db *sqlx.DB) repository.TaskRepository {
	return &taskRepository{NewBaseRepository(db)}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (
			id, owner_id, contact_id, title, description, type, priority,
			status, due_date, created_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	task.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.ContactID,
		task.Title,
		task.Description,
		task.Type,
		task.Priority,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Task, error) {
	query := `SELECT * FROM tasks WHERE id = $1 AND owner_id = $2`
	var task model.Task
	if err := r.db.GetContext(ctx, &task, query, id, ownerID); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET contact_id = $1, title = $2, description = $3, type = $4,
			priority = $5, status = $6, due_date = $7, completed_at = $8
		WHERE id = $9 AND owner_id = $10
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ContactID,
		task.Title,
		task.Description,
		task.Type,
		task.Priority,
		task.Status,
		task.DueDate,
		task.CompletedAt,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, ownerID)
	return err
}

func (r *taskRepository) List(ctx context.Context, ownerID uuid.UUID, f *model.TaskFilters) ([]*model.Task, error) {
	where := `WHERE owner_id = $1`
	args := []interface{}{ownerID}

	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where += fmt.Sprintf(` AND priority = $%d`, len(args))
	}

	query := `SELECT * FROM tasks ` + where + ` ORDER BY created_at DESC`
	tasks := []*model.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
