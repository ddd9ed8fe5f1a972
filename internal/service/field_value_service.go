package service

import (
	"context"
	"errors"

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

// FieldValueService validates candidate values against stored field
// definitions without persisting anything
type FieldValueService interface {
	ValidateFieldValue(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error)
}

// fieldValueServiceImpl is the implementation of FieldValueService
type fieldValueServiceImpl struct {
	defRepo repository.FieldDefinitionRepository
	cache   DefinitionCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFieldValueService creates a new instance of FieldValueService
func NewFieldValueService(
	defRepo repository.FieldDefinitionRepository,
	cache DefinitionCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) FieldValueService {
	return &fieldValueServiceImpl{
		defRepo: defRepo,
		cache:   cache,
		metrics: m,
		logger:  logger,
	}
}

// ValidateFieldValue checks one candidate value against one field definition.
// A rejected value is a successful validation with IsValid false; only a
// missing or corrupt definition is an error.
func (s *fieldValueServiceImpl) ValidateFieldValue(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error) {
	def, cached := s.cache.Get(ctx, fieldID)
	if !cached {
		var err error
		def, err = s.defRepo.FindByID(ctx, fieldID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFoundError("Field definition not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definition", err.Error())
		}
		s.cache.Set(ctx, def)
	}

	if err := authorizeOrganization(auth, def.OrganizationID); err != nil {
		return nil, err
	}

	validator, err := schema.NewValidator(def.Type, def.Config, def.Required)
	if err != nil {
		s.logger.Error("Field definition has an invalid config",
			zap.String("field_id", def.ID.String()),
			zap.String("field_type", string(def.Type)),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInvalidDefinition, "Field definition has an invalid config", err.Error())
	}

	result := validator.Validate(value)
	if !result.Valid && s.metrics != nil {
		s.metrics.IncrementValueValidationFailure(string(def.Type))
	}

	return &dto.FieldValueValidationResponse{
		IsValid: result.Valid,
		Error:   result.Error,
	}, nil
}
