package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/metrics"
	"custom-field-api/internal/repository"
	"custom-field-api/internal/response"
	"custom-field-api/internal/schema"
)

// FieldDefinitionService defines the interface for field definition business logic
type FieldDefinitionService interface {
	CreateFieldDefinition(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error)
	GetFieldDefinitions(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.FieldDefinitionResponse, error)
	UpdateFieldDefinition(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, req *dto.UpdateFieldDefinitionRequest, opts dto.UpdateFieldDefinitionOptions) (*dto.FieldDefinitionResponse, error)
	DeleteFieldDefinition(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, opts dto.DeleteFieldDefinitionOptions) (*dto.DeleteFieldDefinitionResponse, error)
	ReorderFieldDefinitions(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.ReorderFieldDefinitionsRequest) ([]*dto.FieldDefinitionResponse, error)
}

// DefinitionCache caches field definitions for the hot validation path.
// Implementations must degrade to a miss when the backing store is down.
type DefinitionCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, bool)
	Set(ctx context.Context, def *domain.FieldDefinition)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// FieldEventNotifier broadcasts field definition changes to board subscribers
type FieldEventNotifier interface {
	NotifyFieldChange(event *dto.FieldChangeEvent)
}

// fieldDefinitionServiceImpl is the implementation of FieldDefinitionService
type fieldDefinitionServiceImpl struct {
	defRepo   repository.FieldDefinitionRepository
	boardRepo repository.BoardRepository
	taskRepo  repository.TaskRepository
	cache     DefinitionCache
	notifier  FieldEventNotifier
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewFieldDefinitionService creates a new instance of FieldDefinitionService
func NewFieldDefinitionService(
	defRepo repository.FieldDefinitionRepository,
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	cache DefinitionCache,
	notifier FieldEventNotifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) FieldDefinitionService {
	return &fieldDefinitionServiceImpl{
		defRepo:   defRepo,
		boardRepo: boardRepo,
		taskRepo:  taskRepo,
		cache:     cache,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// CreateFieldDefinition creates a new field definition on a board
func (s *fieldDefinitionServiceImpl) CreateFieldDefinition(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error) {
	// Verify board exists
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

	fieldType := domain.FieldType(req.Type)
	if !fieldType.IsValid() {
		return nil, response.NewValidationError("Unsupported field type: "+req.Type, "")
	}

	name, err := normalizeFieldName(req.Name)
	if err != nil {
		return nil, err
	}

	// Structurally validate the config against the declared type
	rawConfig, err := marshalConfig(req.Config)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal config", err.Error())
	}
	if err := schema.ValidateConfig(fieldType, rawConfig); err != nil {
		return nil, response.NewValidationError(err.Error(), "")
	}

	count, err := s.defRepo.CountByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count field definitions", err.Error())
	}

	// Default to appending; an explicit position inserts and shifts the tail
	position := int(count)
	if req.Position != nil {
		position = *req.Position
		if position < 0 {
			position = 0
		}
		if position > int(count) {
			position = int(count)
		}
		if position < int(count) {
			if err := s.defRepo.ShiftPositions(ctx, boardID, position); err != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to shift field positions", err.Error())
			}
		}
	}

	def := &domain.FieldDefinition{
		BoardID:        boardID,
		OrganizationID: board.OrganizationID,
		Name:           name,
		Type:           fieldType,
		Config:         rawConfig,
		Required:       req.Required,
		Position:       position,
	}

	if err := s.defRepo.Create(ctx, def); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create field definition", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementFieldDefinitionCreated()
	}
	s.notify(boardID, def.ID, dto.FieldChangeCreated)

	return toFieldDefinitionResponse(def), nil
}

// GetFieldDefinitions retrieves a board's field definitions ordered by position
func (s *fieldDefinitionServiceImpl) GetFieldDefinitions(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.FieldDefinitionResponse, error) {
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

	responses := make([]*dto.FieldDefinitionResponse, len(defs))
	for i, def := range defs {
		responses[i] = toFieldDefinitionResponse(def)
	}
	return responses, nil
}

// notify broadcasts a field change event if a notifier is wired
func (s *fieldDefinitionServiceImpl) notify(boardID, fieldID uuid.UUID, action string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyFieldChange(&dto.FieldChangeEvent{
		BoardID:   boardID,
		FieldID:   fieldID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}

// authorizeOrganization checks that the caller belongs to the organization.
// A nil auth context means an outer layer already authorized the request.
// Org mismatch is an unauthorized error; an insufficient role is reported
// as forbidden by the operation that checks it, so the two stay separate
// error kinds.
func authorizeOrganization(auth *domain.AuthContext, orgID uuid.UUID) error {
	if auth == nil {
		return nil
	}
	if !auth.HasOrganization(orgID) {
		return response.NewUnauthorizedError("You do not have access to this organization", "")
	}
	return nil
}

// normalizeFieldName trims and validates a field definition name
func normalizeFieldName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", response.NewValidationError("Field name is required", "")
	}
	if len([]rune(name)) > 100 {
		return "", response.NewValidationError("Field name must be at most 100 characters", "")
	}
	return name, nil
}

// marshalConfig converts the request config map to its stored JSON form
func marshalConfig(config map[string]interface{}) ([]byte, error) {
	if config == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(config)
}

// toFieldDefinitionResponse converts domain.FieldDefinition to dto.FieldDefinitionResponse
func toFieldDefinitionResponse(def *domain.FieldDefinition) *dto.FieldDefinitionResponse {
	var config map[string]interface{}
	if len(def.Config) > 0 {
		_ = json.Unmarshal(def.Config, &config)
	}

	return &dto.FieldDefinitionResponse{
		FieldID:   def.ID,
		BoardID:   def.BoardID,
		Name:      def.Name,
		Type:      string(def.Type),
		Config:    config,
		Required:  def.Required,
		Position:  def.Position,
		CreatedAt: def.CreatedAt,
		UpdatedAt: def.UpdatedAt,
	}
}
