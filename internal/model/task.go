package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeFollowUp    TaskType = "follow_up"
	TaskTypeInterview   TaskType = "interview"
	TaskTypeApplication TaskType = "application"
	TaskTypeNetworking  TaskType = "networking"
	TaskTypeResearch    TaskType = "research"
	TaskTypeOther       TaskType = "other"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeFollowUp, TaskTypeInterview, TaskTypeApplication,
		TaskTypeNetworking, TaskTypeResearch, TaskTypeOther:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	OwnerID     uuid.UUID    `db:"owner_id" json:"owner_id"`
	ContactID   *uuid.UUID   `db:"contact_id" json:"contact_id,omitempty"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Type        TaskType     `db:"type" json:"type"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	Status      TaskStatus   `db:"status" json:"status"`
	DueDate     *time.Time   `db:"due_date" json:"due_date,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	CompletedAt *time.Time   `db:"completed_at" json:"completed_at,omitempty"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ContactID   *string    `json:"contact_id"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest is a partial update; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ContactID   *string    `json:"contact_id"`
	Type        *string    `json:"type"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,task_status"`
}

type TaskFilters struct {
	Status   string `form:"status"`
	Type     string `form:"type"`
	Priority string `form:"priority"`
}
