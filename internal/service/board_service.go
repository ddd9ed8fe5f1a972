package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/repository"
	"custom-field-api/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, auth *domain.AuthContext, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoard(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) (*dto.BoardResponse, error)
	GetBoardsByOrganization(ctx context.Context, auth *domain.AuthContext, orgID uuid.UUID) ([]*dto.BoardResponse, error)
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	logger    *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(boardRepo repository.BoardRepository, logger *zap.Logger) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		logger:    logger,
	}
}

// CreateBoard creates a new board owned by the caller
func (s *boardServiceImpl) CreateBoard(ctx context.Context, auth *domain.AuthContext, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if err := authorizeOrganization(auth, req.OrganizationID); err != nil {
		return nil, err
	}

	var ownerID uuid.UUID
	if auth != nil {
		ownerID = auth.UserID
	}

	board := &domain.Board{
		OrganizationID: req.OrganizationID,
		OwnerID:        ownerID,
		Name:           req.Name,
		Description:    req.Description,
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	return toBoardResponse(board), nil
}

// GetBoard retrieves a board by ID
func (s *boardServiceImpl) GetBoard(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) (*dto.BoardResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	if err := authorizeOrganization(auth, board.OrganizationID); err != nil {
		return nil, err
	}

	return toBoardResponse(board), nil
}

// GetBoardsByOrganization retrieves all boards of an organization
func (s *boardServiceImpl) GetBoardsByOrganization(ctx context.Context, auth *domain.AuthContext, orgID uuid.UUID) ([]*dto.BoardResponse, error) {
	if err := authorizeOrganization(auth, orgID); err != nil {
		return nil, err
	}

	boards, err := s.boardRepo.FindByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch boards", err.Error())
	}

	responses := make([]*dto.BoardResponse, len(boards))
	for i, board := range boards {
		responses[i] = toBoardResponse(board)
	}
	return responses, nil
}

// toBoardResponse converts domain.Board to dto.BoardResponse
func toBoardResponse(board *domain.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		BoardID:        board.ID,
		OrganizationID: board.OrganizationID,
		OwnerID:        board.OwnerID,
		Name:           board.Name,
		Description:    board.Description,
		CreatedAt:      board.CreatedAt,
		UpdatedAt:      board.UpdatedAt,
	}
}
