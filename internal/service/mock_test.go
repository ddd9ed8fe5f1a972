package service

import (
	"context"

	"github.com/google/uuid"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
)

// MockFieldDefinitionRepository is a mock implementation of FieldDefinitionRepository
type MockFieldDefinitionRepository struct {
	CreateFunc         func(ctx context.Context, def *domain.FieldDefinition) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error)
	FindByBoardIDFunc  func(ctx context.Context, boardID uuid.UUID) ([]*domain.FieldDefinition, error)
	CountByBoardIDFunc func(ctx context.Context, boardID uuid.UUID) (int64, error)
	ShiftPositionsFunc func(ctx context.Context, boardID uuid.UUID, fromPosition int) error
	UpdateFunc         func(ctx context.Context, def *domain.FieldDefinition) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	ReorderFunc        func(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int) ([]*domain.FieldDefinition, error)
}

func (m *MockFieldDefinitionRepository) Create(ctx context.Context, def *domain.FieldDefinition) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, def)
	}
	return nil
}

func (m *MockFieldDefinitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockFieldDefinitionRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.FieldDefinition, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockFieldDefinitionRepository) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	if m.CountByBoardIDFunc != nil {
		return m.CountByBoardIDFunc(ctx, boardID)
	}
	return 0, nil
}

func (m *MockFieldDefinitionRepository) ShiftPositions(ctx context.Context, boardID uuid.UUID, fromPosition int) error {
	if m.ShiftPositionsFunc != nil {
		return m.ShiftPositionsFunc(ctx, boardID, fromPosition)
	}
	return nil
}

func (m *MockFieldDefinitionRepository) Update(ctx context.Context, def *domain.FieldDefinition) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, def)
	}
	return nil
}

func (m *MockFieldDefinitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockFieldDefinitionRepository) Reorder(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int) ([]*domain.FieldDefinition, error) {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, boardID, positions)
	}
	return nil, nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc               func(ctx context.Context, board *domain.Board) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByOrganizationIDFunc func(ctx context.Context, orgID uuid.UUID) ([]*domain.Board, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByOrganizationIDFunc != nil {
		return m.FindByOrganizationIDFunc(ctx, orgID)
	}
	return nil, nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc             func(ctx context.Context, task *domain.Task) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByBoardIDFunc      func(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	FindWithFieldValueFunc func(ctx context.Context, boardID uuid.UUID, fieldID string) ([]*domain.Task, error)
	FindAllFunc            func(ctx context.Context) ([]*domain.Task, error)
	UpdateFunc             func(ctx context.Context, task *domain.Task) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindWithFieldValue(ctx context.Context, boardID uuid.UUID, fieldID string) ([]*domain.Task, error) {
	if m.FindWithFieldValueFunc != nil {
		return m.FindWithFieldValueFunc(ctx, boardID, fieldID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockDefinitionCache is a mock implementation of DefinitionCache
type MockDefinitionCache struct {
	GetFunc        func(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, bool)
	SetFunc        func(ctx context.Context, def *domain.FieldDefinition)
	InvalidateFunc func(ctx context.Context, id uuid.UUID)
	Invalidated    []uuid.UUID
}

func (m *MockDefinitionCache) Get(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, bool) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, false
}

func (m *MockDefinitionCache) Set(ctx context.Context, def *domain.FieldDefinition) {
	if m.SetFunc != nil {
		m.SetFunc(ctx, def)
	}
}

func (m *MockDefinitionCache) Invalidate(ctx context.Context, id uuid.UUID) {
	m.Invalidated = append(m.Invalidated, id)
	if m.InvalidateFunc != nil {
		m.InvalidateFunc(ctx, id)
	}
}

// MockFieldEventNotifier is a mock implementation of FieldEventNotifier
type MockFieldEventNotifier struct {
	Events []*dto.FieldChangeEvent
}

func (m *MockFieldEventNotifier) NotifyFieldChange(event *dto.FieldChangeEvent) {
	m.Events = append(m.Events, event)
}
