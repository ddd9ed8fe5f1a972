package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	OrganizationID uuid.UUID `json:"organizationId" binding:"required"`
	Name           string    `json:"name" binding:"required,max=255"`
	Description    string    `json:"description"`
}

// BoardResponse represents the board response
type BoardResponse struct {
	BoardID        uuid.UUID `json:"boardId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	OwnerID        uuid.UUID `json:"ownerId"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
