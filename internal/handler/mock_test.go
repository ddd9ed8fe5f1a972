package handler

import (
	"context"

	"github.com/google/uuid"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
)

// MockFieldDefinitionService is a function-field mock of FieldDefinitionService
type MockFieldDefinitionService struct {
	CreateFieldDefinitionFunc   func(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error)
	GetFieldDefinitionsFunc     func(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.FieldDefinitionResponse, error)
	UpdateFieldDefinitionFunc   func(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, req *dto.UpdateFieldDefinitionRequest, opts dto.UpdateFieldDefinitionOptions) (*dto.FieldDefinitionResponse, error)
	DeleteFieldDefinitionFunc   func(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, opts dto.DeleteFieldDefinitionOptions) (*dto.DeleteFieldDefinitionResponse, error)
	ReorderFieldDefinitionsFunc func(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.ReorderFieldDefinitionsRequest) ([]*dto.FieldDefinitionResponse, error)
}

func (m *MockFieldDefinitionService) CreateFieldDefinition(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error) {
	return m.CreateFieldDefinitionFunc(ctx, auth, boardID, req)
}

func (m *MockFieldDefinitionService) GetFieldDefinitions(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.FieldDefinitionResponse, error) {
	return m.GetFieldDefinitionsFunc(ctx, auth, boardID)
}

func (m *MockFieldDefinitionService) UpdateFieldDefinition(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, req *dto.UpdateFieldDefinitionRequest, opts dto.UpdateFieldDefinitionOptions) (*dto.FieldDefinitionResponse, error) {
	return m.UpdateFieldDefinitionFunc(ctx, auth, fieldID, req, opts)
}

func (m *MockFieldDefinitionService) DeleteFieldDefinition(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, opts dto.DeleteFieldDefinitionOptions) (*dto.DeleteFieldDefinitionResponse, error) {
	return m.DeleteFieldDefinitionFunc(ctx, auth, fieldID, opts)
}

func (m *MockFieldDefinitionService) ReorderFieldDefinitions(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.ReorderFieldDefinitionsRequest) ([]*dto.FieldDefinitionResponse, error) {
	return m.ReorderFieldDefinitionsFunc(ctx, auth, boardID, req)
}

// MockFieldValueService is a function-field mock of FieldValueService
type MockFieldValueService struct {
	ValidateFieldValueFunc func(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error)
}

func (m *MockFieldValueService) ValidateFieldValue(ctx context.Context, auth *domain.AuthContext, fieldID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error) {
	return m.ValidateFieldValueFunc(ctx, auth, fieldID, value)
}

// MockTaskService is a function-field mock of TaskService
type MockTaskService struct {
	CreateTaskFunc      func(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTaskFunc         func(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) (*dto.TaskResponse, error)
	GetTasksByBoardFunc func(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.TaskResponse, error)
	UpdateTaskFunc      func(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTaskFunc      func(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) error
}

func (m *MockTaskService) CreateTask(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	return m.CreateTaskFunc(ctx, auth, boardID, req)
}

func (m *MockTaskService) GetTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) (*dto.TaskResponse, error) {
	return m.GetTaskFunc(ctx, auth, taskID)
}

func (m *MockTaskService) GetTasksByBoard(ctx context.Context, auth *domain.AuthContext, boardID uuid.UUID) ([]*dto.TaskResponse, error) {
	return m.GetTasksByBoardFunc(ctx, auth, boardID)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	return m.UpdateTaskFunc(ctx, auth, taskID, req)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, auth *domain.AuthContext, taskID uuid.UUID) error {
	return m.DeleteTaskFunc(ctx, auth, taskID)
}
