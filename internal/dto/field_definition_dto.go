package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateFieldDefinitionRequest represents the request to create a field definition
type CreateFieldDefinitionRequest struct {
	Name     string                 `json:"name" binding:"required,max=100"`
	Type     string                 `json:"type" binding:"required,oneof=text number date select multi_select checkbox"`
	Config   map[string]interface{} `json:"config"`
	Required bool                   `json:"required"`
	Position *int                   `json:"position"`
}

// UpdateFieldDefinitionRequest represents a partial update of a field
// definition. Type is carried only so a change attempt can be rejected;
// the field type is immutable after creation.
type UpdateFieldDefinitionRequest struct {
	Name     *string                `json:"name" binding:"omitempty,max=100"`
	Type     *string                `json:"type"`
	Config   map[string]interface{} `json:"config"`
	Required *bool                  `json:"required"`
}

// UpdateFieldDefinitionOptions controls impact analysis during an update.
// ValidateExistingValues rejects the update if any stored task value would
// become invalid; ClearInvalidValues strips such values before committing.
type UpdateFieldDefinitionOptions struct {
	ValidateExistingValues bool
	ClearInvalidValues     bool
}

// DeleteFieldDefinitionOptions controls the delete guards. CleanupTaskValues
// strips the field's value from affected tasks before deletion; Force
// bypasses the required-field and in-use guards.
type DeleteFieldDefinitionOptions struct {
	CleanupTaskValues bool
	Force             bool
}

// FieldPosition is one (field, position) pair of a reorder request
type FieldPosition struct {
	FieldID  uuid.UUID `json:"fieldId" binding:"required"`
	Position int       `json:"position"`
}

// ReorderFieldDefinitionsRequest represents a full repositioning of all
// field definitions of a board
type ReorderFieldDefinitionsRequest struct {
	Positions []FieldPosition `json:"positions"`
}

// FieldDefinitionResponse represents the field definition response
type FieldDefinitionResponse struct {
	FieldID          uuid.UUID              `json:"fieldId"`
	BoardID          uuid.UUID              `json:"boardId"`
	Name             string                 `json:"name"`
	Type             string                 `json:"type"`
	Config           map[string]interface{} `json:"config,omitempty"`
	Required         bool                   `json:"required"`
	Position         int                    `json:"position"`
	ClearedTaskCount int                    `json:"clearedTaskCount,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// DeleteFieldDefinitionResponse reports the outcome of a delete, including
// how many tasks had their value cleaned up
type DeleteFieldDefinitionResponse struct {
	FieldID          uuid.UUID `json:"fieldId"`
	CleanedTaskCount int       `json:"cleanedTaskCount"`
}

// ValidateFieldValueRequest represents a dry-run value validation request
type ValidateFieldValueRequest struct {
	Value interface{} `json:"value"`
}

// FieldValueValidationResponse is the result of validating one value
// against one field definition
type FieldValueValidationResponse struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// FieldChangeEvent is broadcast to board subscribers when a field
// definition changes
type FieldChangeEvent struct {
	BoardID   uuid.UUID `json:"boardId"`
	FieldID   uuid.UUID `json:"fieldId,omitempty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// FieldChangeEvent actions
const (
	FieldChangeCreated   = "created"
	FieldChangeUpdated   = "updated"
	FieldChangeDeleted   = "deleted"
	FieldChangeReordered = "reordered"
)
