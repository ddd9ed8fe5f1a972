package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
)

// ReorderFieldDefinitions applies a full repositioning of a board's field
// definitions. The request must cover every definition exactly once with a
// gapless position sequence starting at zero; the remap is committed in a
// single transaction.
func (s *fieldDefinitionServiceImpl) ReorderFieldDefinitions(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.ReorderFieldDefinitionsRequest) ([]*dto.FieldDefinitionResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify board", err.Error())
	}

	if err := authorizeOrganization(auth, board.OrganizationID); err != nil {
		return nil, err
	}

	defs, err := s.defRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}
	if len(defs) == 0 {
		return nil, response.NewValidationError("Board has no field definitions to reorder", "")
	}
	if len(req.Positions) == 0 {
		return nil, response.NewValidationError("Positions must not be empty", "")
	}

	positions, err := validateReorderPositions(defs, req.Positions)
	if err != nil {
		return nil, err
	}

	reordered, err := s.defRepo.Reorder(ctx, boardID, positions)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reorder field definitions", err.Error())
	}

	for fieldID := range positions {
		s.cache.Invalidate(ctx, fieldID)
	}
	s.notify(boardID, uuid.Nil, dto.FieldChangeReordered)

	responses := make([]*dto.FieldDefinitionResponse, len(reordered))
	for i, def := range reordered {
		responses[i] = toFieldDefinitionResponse(def)
	}
	return responses, nil
}

// validateReorderPositions checks a reorder request against the board's
// current definitions and returns the position remap
func validateReorderPositions(defs []*domain.FieldDefinition, pairs []dto.FieldPosition) (map[uuid.UUID]int, error) {
	known := make(map[uuid.UUID]bool, len(defs))
	for _, def := range defs {
		known[def.ID] = true
	}

	positions := make(map[uuid.UUID]int, len(pairs))
	seenPositions := make(map[int]bool, len(pairs))
	for _, pair := range pairs {
		if _, dup := positions[pair.FieldID]; dup {
			return nil, response.NewValidationError(
				fmt.Sprintf("Duplicate field in positions: %s", pair.FieldID), "")
		}
		if seenPositions[pair.Position] {
			return nil, response.NewValidationError(
				fmt.Sprintf("Duplicate position: %d", pair.Position), "")
		}
		if !known[pair.FieldID] {
			return nil, response.NewValidationError(
				fmt.Sprintf("Field %s does not belong to this board", pair.FieldID), "")
		}
		positions[pair.FieldID] = pair.Position
		seenPositions[pair.Position] = true
	}

	if len(positions) != len(defs) {
		return nil, response.NewValidationError("Positions must be provided for all fields", "")
	}
	// All positions are distinct and cover every field, so bounds alone
	// guarantee a gapless 0..N-1 permutation
	for _, position := range positions {
		if position < 0 || position >= len(defs) {
			return nil, response.NewValidationError(
				"Positions must form a gapless sequence starting at 0", "")
		}
	}

	return positions, nil
}
