package domain

import "github.com/google/uuid"

// Board represents a task board owned by an organization
type Board struct {
	BaseModel
	OrganizationID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_boards_organization_id" json:"organization_id"`
	OwnerID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"owner_id"`
	Name             string            `gorm:"type:varchar(255);not null" json:"name"`
	Description      string            `gorm:"type:text" json:"description"`
	FieldDefinitions []FieldDefinition `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"field_definitions,omitempty"`
	Tasks            []Task            `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}
