package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
	"custom-field-api/internal/schema"
)

// UpdateFieldDefinition updates a field definition's name, config, and
// required flag. The field type is immutable. When impact options are set,
// the board's stored task values are checked against the candidate config
// before the definition is committed; validation precedence is reject over
// clear when both options are requested.
func (s *fieldDefinitionServiceImpl) UpdateFieldDefinition(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, req *dto.UpdateFieldDefinitionRequest, opts dto.UpdateFieldDefinitionOptions) (*dto.FieldDefinitionResponse, error) {
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

	if req.Type != nil && domain.FieldType(*req.Type) != def.Type {
		return nil, response.NewAppError(response.ErrCodeTypeImmutable, "Cannot change the type of an existing field", "")
	}

	name := def.Name
	if req.Name != nil {
		name, err = normalizeFieldName(*req.Name)
		if err != nil {
			return nil, err
		}
	}

	// Merge the candidate config key-wise over the stored one; a JSON null
	// entry removes the key
	rawConfig := def.Config
	if req.Config != nil {
		merged := make(map[string]interface{})
		if len(def.Config) > 0 {
			if err := json.Unmarshal(def.Config, &merged); err != nil {
				return nil, response.NewAppError(response.ErrCodeInvalidDefinition, "Field definition has a corrupt config", err.Error())
			}
		}
		for key, value := range req.Config {
			if value == nil {
				delete(merged, key)
				continue
			}
			merged[key] = value
		}
		mergedJSON, err := json.Marshal(merged)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal config", err.Error())
		}
		if err := schema.ValidateConfig(def.Type, mergedJSON); err != nil {
			return nil, response.NewValidationError(err.Error(), "")
		}
		rawConfig = mergedJSON
	}

	required := def.Required
	if req.Required != nil {
		required = *req.Required
	}

	clearedCount := 0
	if opts.ValidateExistingValues || opts.ClearInvalidValues {
		clearedCount, err = s.applyUpdateImpact(ctx, def, rawConfig, opts)
		if err != nil {
			return nil, err
		}
	}

	def.Name = name
	def.Config = rawConfig
	def.Required = required

	if err := s.defRepo.Update(ctx, def); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update field definition", err.Error())
	}

	s.cache.Invalidate(ctx, def.ID)
	s.notify(def.BoardID, def.ID, dto.FieldChangeUpdated)

	resp := toFieldDefinitionResponse(def)
	resp.ClearedTaskCount = clearedCount
	return resp, nil
}

// applyUpdateImpact scans the board's stored values against the candidate
// config. It returns the number of task values cleared, or an error when the
// update must be rejected. The scan validator runs with required off since
// stored absence is not a constraint violation.
func (s *fieldDefinitionServiceImpl) applyUpdateImpact(ctx context.Context, def *domain.FieldDefinition, candidateConfig []byte, opts dto.UpdateFieldDefinitionOptions) (int, error) {
	validator, err := schema.NewValidator(def.Type, candidateConfig, false)
	if err != nil {
		return 0, response.NewAppError(response.ErrCodeInvalidDefinition, "Field definition has an invalid config", err.Error())
	}

	tasks, err := s.taskRepo.FindWithFieldValue(ctx, def.BoardID, def.ID.String())
	if err != nil {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to scan task values", err.Error())
	}

	fieldKey := def.ID.String()
	var invalidTasks []*domain.Task
	for _, task := range tasks {
		values := make(map[string]interface{})
		if len(task.CustomFields) > 0 {
			if err := json.Unmarshal(task.CustomFields, &values); err != nil {
				s.logger.Warn("Skipping task with corrupt custom fields during impact scan",
					zap.String("task_id", task.ID.String()),
					zap.Error(err))
				continue
			}
		}
		value, ok := values[fieldKey]
		if !ok {
			continue
		}
		if result := validator.Validate(value); !result.Valid {
			invalidTasks = append(invalidTasks, task)
		}
	}

	if len(invalidTasks) == 0 {
		return 0, nil
	}

	if opts.ValidateExistingValues {
		return 0, response.NewConflictError(
			fmt.Sprintf("Update would invalidate values on %d task(s)", len(invalidTasks)), "")
	}

	// Clear mode: strip the now-invalid values before the definition changes,
	// so a failure here leaves the old definition intact
	cleared := 0
	for _, task := range invalidTasks {
		if err := s.clearTaskFieldValue(ctx, task, fieldKey); err != nil {
			return cleared, response.NewAppError(response.ErrCodeInternal, "Failed to clear invalid task values", err.Error())
		}
		cleared++
	}

	if s.metrics != nil && cleared > 0 {
		s.metrics.AddTaskValuesCleaned(cleared)
	}
	return cleared, nil
}

// clearTaskFieldValue removes one field's entry from a task's custom field map
func (s *fieldDefinitionServiceImpl) clearTaskFieldValue(ctx context.Context, task *domain.Task, fieldKey string) error {
	values := make(map[string]interface{})
	if len(task.CustomFields) > 0 {
		if err := json.Unmarshal(task.CustomFields, &values); err != nil {
			return err
		}
	}
	delete(values, fieldKey)

	jsonBytes, err := json.Marshal(values)
	if err != nil {
		return err
	}
	task.CustomFields = jsonBytes
	return s.taskRepo.Update(ctx, task)
}
