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
	"custom-field-api/internal/metrics"
	"custom-field-api/internal/repository"
	"custom-field-api/internal/response"
	"custom-field-api/internal/schema"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) (*dto.TaskResponse, error)
	GetTasksByBoard(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) error
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
	defRepo   repository.FieldDefinitionRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	boardRepo repository.BoardRepository,
	defRepo repository.FieldDefinitionRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		defRepo:   defRepo,
		metrics:   m,
		logger:    logger,
	}
}

// CreateTask creates a new task with its custom field values validated
// against the board's field definitions
func (s *taskServiceImpl) CreateTask(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
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

	values := req.CustomFields
	if values == nil {
		values = make(map[string]interface{})
	}
	if err := s.validateCustomFields(ctx, boardID, values); err != nil {
		return nil, err
	}

	customFieldsJSON, err := json.Marshal(values)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal custom fields", err.Error())
	}

	var authorID uuid.UUID
	if auth != nil {
		authorID = auth.UserID
	}

	task := &domain.Task{
		BoardID:      boardID,
		AuthorID:     authorID,
		Title:        req.Title,
		Description:  req.Description,
		CustomFields: customFieldsJSON,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}

	return toTaskResponse(task), nil
}

// GetTask retrieves a task by ID
func (s *taskServiceImpl) GetTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, board, err := s.loadTaskWithBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrganization(auth, board.OrganizationID); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// GetTasksByBoard retrieves all tasks of a board
func (s *taskServiceImpl) GetTasksByBoard(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.TaskResponse, error) {
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

	tasks, err := s.taskRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}

	responses := make([]*dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = toTaskResponse(task)
	}
	return responses, nil
}

// UpdateTask updates a task's attributes. Custom field entries merge over
// the stored map; a JSON null entry clears that field's value. The merged
// result is revalidated as a whole, including required fields.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, board, err := s.loadTaskWithBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrganization(auth, board.OrganizationID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	if req.CustomFields != nil {
		merged := make(map[string]interface{})
		if len(task.CustomFields) > 0 {
			if err := json.Unmarshal(task.CustomFields, &merged); err != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode stored custom fields", err.Error())
			}
		}
		for key, value := range *req.CustomFields {
			if value == nil {
				delete(merged, key)
				continue
			}
			merged[key] = value
		}

		if err := s.validateCustomFields(ctx, task.BoardID, merged); err != nil {
			return nil, err
		}

		jsonBytes, err := json.Marshal(merged)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal custom fields", err.Error())
		}
		task.CustomFields = jsonBytes
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	return toTaskResponse(task), nil
}

// DeleteTask soft deletes a task
func (s *taskServiceImpl) DeleteTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) error {
	task, board, err := s.loadTaskWithBoard(ctx, taskID)
	if err != nil {
		return err
	}
	if err := authorizeOrganization(auth, board.OrganizationID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}
	return nil
}

// validateCustomFields checks a full custom field map against the board's
// definitions: every key must name a known field, every value must satisfy
// its field's constraints, and required fields must carry a value
func (s *taskServiceImpl) validateCustomFields(ctx context.Context, boardID uuid.UUID, values map[string]interface{}) error {
	defs, err := s.defRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	defsByID := make(map[string]*domain.FieldDefinition, len(defs))
	for _, def := range defs {
		defsByID[def.ID.String()] = def
	}

	for key := range values {
		if _, ok := defsByID[key]; !ok {
			return response.NewValidationError(fmt.Sprintf("Unknown field: %s", key), "")
		}
	}

	for _, def := range defs {
		validator, err := schema.NewValidator(def.Type, def.Config, def.Required)
		if err != nil {
			return response.NewAppError(response.ErrCodeInvalidDefinition, "Field definition has an invalid config", err.Error())
		}

		value, present := values[def.ID.String()]
		if !present {
			if def.Required {
				return response.NewValidationError(fmt.Sprintf("%s: field is required", def.Name), "")
			}
			continue
		}
		if result := validator.Validate(value); !result.Valid {
			if s.metrics != nil {
				s.metrics.IncrementValueValidationFailure(string(def.Type))
			}
			return response.NewValidationError(fmt.Sprintf("%s: %s", def.Name, result.Error), "")
		}
	}

	return nil
}

// loadTaskWithBoard fetches a task and its board for authorization
func (s *taskServiceImpl) loadTaskWithBoard(ctx context.Context, taskID uuid.UUID) (*domain.Task, *domain.Board, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch task", err.Error())
	}

	board, err := s.boardRepo.FindByID(ctx, task.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify board", err.Error())
	}
	return task, board, nil
}

// toTaskResponse converts domain.Task to dto.TaskResponse
func toTaskResponse(task *domain.Task) *dto.TaskResponse {
	var customFields map[string]interface{}
	if len(task.CustomFields) > 0 {
		_ = json.Unmarshal(task.CustomFields, &customFields)
	}

	return &dto.TaskResponse{
		TaskID:       task.ID,
		BoardID:      task.BoardID,
		AuthorID:     task.AuthorID,
		Title:        task.Title,
		Description:  task.Description,
		CustomFields: customFields,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}
