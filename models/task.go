package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task status constants
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
	TaskStatusCancelled  = "CANCELLED"
)

// DefaultTaskType is applied when no type is supplied
const DefaultTaskType = "GENERAL"

// Task represents a work item, optionally attached to a case
type Task struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner (tenant isolation)
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	// Case relationship (optional)
	LegalCaseID *string    `gorm:"type:uuid;index" json:"legal_case_id,omitempty"`
	LegalCase   *LegalCase `gorm:"foreignKey:LegalCaseID" json:"legal_case,omitempty"`

	Title       string  `gorm:"not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	TaskType    string  `gorm:"not null;default:GENERAL" json:"task_type"`
	Status      string  `gorm:"not null;default:TODO;index" json:"status"`
	Priority    string  `gorm:"not null;default:NORMAL" json:"priority"`

	DueDate      *time.Time `gorm:"index" json:"due_date,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`

	AssignedTo *string `json:"assigned_to,omitempty"`
}

// BeforeCreate hook to generate UUID and apply creation defaults
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	if t.TaskType == "" {
		t.TaskType = DefaultTaskType
	}
	return nil
}

// TableName specifies the table name for Task model
func (Task) TableName() string {
	return "tasks"
}

// IsDone checks if the task reached the terminal completed status
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

// IsOverdue reports whether the task is past its due date and not completed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status != TaskStatusDone
}

// IsValidTaskStatus checks if the status is valid
func IsValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}
