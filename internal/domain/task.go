package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Task represents a work item on a board. CustomFields holds the task's
// custom field values as a JSON map keyed by field definition ID.
type Task struct {
	BaseModel
	BoardID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_board_id" json:"board_id"`
	AuthorID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_author_id" json:"author_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	CustomFields datatypes.JSON `gorm:"type:jsonb" json:"custom_fields"`
	Board        *Board         `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
