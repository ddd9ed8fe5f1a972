package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
)

// FieldDefinitionRepository defines the interface for field definition data access
type FieldDefinitionRepository interface {
	Create(ctx context.Context, def *domain.FieldDefinition) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.FieldDefinition, error)
	CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error)
	ShiftPositions(ctx context.Context, boardID uuid.UUID, fromPosition int) error
	Update(ctx context.Context, def *domain.FieldDefinition) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int) ([]*domain.FieldDefinition, error)
}

// fieldDefinitionRepositoryImpl is the GORM implementation of FieldDefinitionRepository
type fieldDefinitionRepositoryImpl struct {
	db *gorm.DB
}

// NewFieldDefinitionRepository creates a new instance of FieldDefinitionRepository
func NewFieldDefinitionRepository(db *gorm.DB) FieldDefinitionRepository {
	return &fieldDefinitionRepositoryImpl{db: db}
}

// Create creates a new field definition
func (r *fieldDefinitionRepositoryImpl) Create(ctx context.Context, def *domain.FieldDefinition) error {
	return r.db.WithContext(ctx).Create(def).Error
}

// FindByID finds a field definition by ID
func (r *fieldDefinitionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error) {
	var def domain.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&def).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

// FindByBoardID finds all field definitions of a board, ordered by position
func (r *fieldDefinitionRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.FieldDefinition, error) {
	var defs []*domain.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// CountByBoardID counts the field definitions of a board
func (r *fieldDefinitionRepositoryImpl) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.FieldDefinition{}).
		Where("board_id = ?", boardID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ShiftPositions increments the position of every definition at or after
// fromPosition, making room for an insert
func (r *fieldDefinitionRepositoryImpl) ShiftPositions(ctx context.Context, boardID uuid.UUID, fromPosition int) error {
	return r.db.WithContext(ctx).
		Model(&domain.FieldDefinition{}).
		Where("board_id = ? AND position >= ?", boardID, fromPosition).
		UpdateColumn("position", gorm.Expr("position + 1")).Error
}

// Update updates a field definition
func (r *fieldDefinitionRepositoryImpl) Update(ctx context.Context, def *domain.FieldDefinition) error {
	return r.db.WithContext(ctx).Save(def).Error
}

// Delete soft deletes a field definition
func (r *fieldDefinitionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.FieldDefinition{}, id).Error
}

// Reorder applies a full position remap for a board's definitions inside a
// single transaction, so a partial application is never retained
func (r *fieldDefinitionRepositoryImpl) Reorder(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int) ([]*domain.FieldDefinition, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for fieldID, position := range positions {
			result := tx.Model(&domain.FieldDefinition{}).
				Where("id = ? AND board_id = ?", fieldID, boardID).
				UpdateColumn("position", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("field definition %s not found in board %s", fieldID, boardID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByBoardID(ctx, boardID)
}
