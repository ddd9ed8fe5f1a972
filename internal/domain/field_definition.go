package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FieldType represents the type of a custom field
type FieldType string

// FieldType constants
const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi_select"
	FieldTypeCheckbox    FieldType = "checkbox"
)

// IsValid reports whether the field type is one of the supported types
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeSelect, FieldTypeMultiSelect, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// FieldDefinition describes one custom field attached to a board.
// Type is immutable after creation. Position is a zero-based, gapless
// display order among the board's definitions.
type FieldDefinition struct {
	BaseModel
	BoardID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_field_definitions_board_id" json:"board_id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index:idx_field_definitions_organization_id" json:"organization_id"`
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	Type           FieldType      `gorm:"type:varchar(50);not null" json:"type"`
	Config         datatypes.JSON `gorm:"type:jsonb" json:"config"`
	Required       bool           `gorm:"type:boolean;not null;default:false" json:"required"`
	Position       int            `gorm:"type:int;not null;default:0;index:idx_field_definitions_position" json:"position"`
	Board          *Board         `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// TableName specifies the table name for FieldDefinition
func (FieldDefinition) TableName() string {
	return "field_definitions"
}
