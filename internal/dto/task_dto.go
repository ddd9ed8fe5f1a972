package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title        string                 `json:"title" binding:"required,max=255"`
	Description  string                 `json:"description"`
	CustomFields map[string]interface{} `json:"customFields"`
}

// UpdateTaskRequest represents a partial task update. A null entry in
// CustomFields clears that field's value.
type UpdateTaskRequest struct {
	Title        *string                 `json:"title" binding:"omitempty,max=255"`
	Description  *string                 `json:"description"`
	CustomFields *map[string]interface{} `json:"customFields"`
}

// TaskResponse represents the task response
type TaskResponse struct {
	TaskID       uuid.UUID              `json:"taskId"`
	BoardID      uuid.UUID              `json:"boardId"`
	AuthorID     uuid.UUID              `json:"authorId"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	CustomFields map[string]interface{} `json:"customFields,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}
