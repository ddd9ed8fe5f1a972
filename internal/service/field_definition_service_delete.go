package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
)

// DeleteFieldDefinition deletes a field definition. Required fields and
// fields still referenced by task values are guarded; CleanupTaskValues
// strips the referencing values first, and Force bypasses both guards,
// leaving any remaining values for the orphan cleanup job.
func (s *fieldDefinitionServiceImpl) DeleteFieldDefinition(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, opts dto.DeleteFieldDefinitionOptions) (*dto.DeleteFieldDefinitionResponse, error) {
	def, err := s.defRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Field definition not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definition", err.Error())
	}

	if err := authorizeOrganization(auth, def.OrganizationID); err != nil {
		return nil, err
	}
	// Deleting a definition is destructive to task data, so when a role was
	// supplied it must be admin
	if auth != nil && auth.Role != "" && !auth.IsAdmin() {
		return nil, response.NewForbiddenError("Only organization admins can delete field definitions", "")
	}

	if def.Required && !opts.Force {
		return nil, response.NewConflictError("Cannot delete a required field", "")
	}

	tasks, err := s.taskRepo.FindWithFieldValue(ctx, def.BoardID, def.ID.String())
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to scan task values", err.Error())
	}

	if len(tasks) > 0 && !opts.CleanupTaskValues && !opts.Force {
		return nil, response.NewAppError(response.ErrCodeFieldInUse,
			fmt.Sprintf("Field is in use by %d task(s)", len(tasks)), "")
	}

	// Cleanup writes land before the definition is removed, so a mid-flight
	// failure leaves the definition and its remaining values consistent
	cleaned := 0
	if opts.CleanupTaskValues {
		fieldKey := def.ID.String()
		for _, task := range tasks {
			if err := s.clearTaskFieldValue(ctx, task, fieldKey); err != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to clean up task values", err.Error())
			}
			cleaned++
		}
		if s.metrics != nil && cleaned > 0 {
			s.metrics.AddTaskValuesCleaned(cleaned)
		}
	} else if len(tasks) > 0 {
		s.logger.Info("Force deleting field definition with remaining task values",
			zap.String("field_id", def.ID.String()),
			zap.Int("task_count", len(tasks)))
	}

	if err := s.defRepo.Delete(ctx, def.ID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete field definition", err.Error())
	}

	s.cache.Invalidate(ctx, def.ID)
	s.notify(def.BoardID, def.ID, dto.FieldChangeDeleted)

	return &dto.DeleteFieldDefinitionResponse{
		FieldID:          def.ID,
		CleanedTaskCount: cleaned,
	}, nil
}
