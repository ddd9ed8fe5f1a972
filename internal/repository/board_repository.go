package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*domain.Board, error)
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create creates a new board
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FindByID finds a board by ID
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByOrganizationID finds all boards of an organization
func (r *boardRepositoryImpl) FindByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}
