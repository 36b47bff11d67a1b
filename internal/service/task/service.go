package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/repository"
	apperrors "github.com/leadmessenger/outreach-api/pkg/errors"
)

type Service struct {
	repo repository.TaskRepository
}

func NewService(repo repository.TaskRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, f *model.TaskFilters) ([]*model.Task, error) {
	tasks, err := s.repo.List(ctx, ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Task, error) {
	task, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("task")
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateTaskRequest) (*model.Task, error) {
	taskType := model.TaskTypeFollowUp
	if req.Type != "" {
		taskType = model.TaskType(req.Type)
		if !taskType.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid task type %q", req.Type))
		}
	}
	priority := model.TaskPriorityMedium
	if req.Priority != "" {
		priority = model.TaskPriority(req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid task priority %q", req.Priority))
		}
	}
	status := model.TaskStatusPending
	if req.Status != "" {
		status = model.TaskStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid task status %q", req.Status))
		}
	}

	var contactID *uuid.UUID
	if req.ContactID != nil && *req.ContactID != "" {
		parsed, err := uuid.Parse(*req.ContactID)
		if err != nil {
			return nil, apperrors.Validation("invalid contact ID")
		}
		contactID = &parsed
	}

	task := &model.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ContactID:   contactID,
		Title:       req.Title,
		Description: req.Description,
		Type:        taskType,
		Priority:    priority,
		Status:      status,
		DueDate:     req.DueDate,
	}
	if task.Status == model.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.ContactID != nil {
		if *req.ContactID == "" {
			task.ContactID = nil
		} else {
			parsed, err := uuid.Parse(*req.ContactID)
			if err != nil {
				return nil, apperrors.Validation("invalid contact ID")
			}
			task.ContactID = &parsed
		}
	}
	if req.Type != nil {
		taskType := model.TaskType(*req.Type)
		if !taskType.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid task type %q", *req.Type))
		}
		task.Type = taskType
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid task priority %q", *req.Priority))
		}
		task.Priority = priority
	}
	if req.Status != nil {
		if err := s.applyStatus(task, model.TaskStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *Service) SetStatus(ctx context.Context, ownerID, id uuid.UUID, status model.TaskStatus) (*model.Task, error) {
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyStatus(task, status); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

// applyStatus owns the completed_at derivation: the timestamp is set exactly
// when the task enters "completed" and cleared on any other status.
func (s *Service) applyStatus(task *model.Task, status model.TaskStatus) error {
	if !status.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid task status %q", status))
	}

	switch {
	case status == model.TaskStatusCompleted && task.Status != model.TaskStatusCompleted:
		now := time.Now()
		task.CompletedAt = &now
	case status != model.TaskStatusCompleted:
		task.CompletedAt = nil
	}
	task.Status = status
	return nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
