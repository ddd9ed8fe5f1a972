package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"custom-field-api/internal/domain"
)

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindWithFieldValue(ctx context.Context, boardID uuid.UUID, fieldID string) ([]*domain.Task, error) {
	args := m.Called(ctx, boardID, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFieldDefinitionRepository is a mock implementation of FieldDefinitionRepository
type MockFieldDefinitionRepository struct {
	mock.Mock
}

func (m *MockFieldDefinitionRepository) Create(ctx context.Context, def *domain.FieldDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockFieldDefinitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.FieldDefinition, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionRepository) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFieldDefinitionRepository) ShiftPositions(ctx context.Context, boardID uuid.UUID, fromPosition int) error {
	args := m.Called(ctx, boardID, fromPosition)
	return args.Error(0)
}

func (m *MockFieldDefinitionRepository) Update(ctx context.Context, def *domain.FieldDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockFieldDefinitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFieldDefinitionRepository) Reorder(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int) ([]*domain.FieldDefinition, error) {
	args := m.Called(ctx, boardID, positions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FieldDefinition), args.Error(1)
}

func makeTask(boardID uuid.UUID, values map[string]interface{}) *domain.Task {
	raw, _ := json.Marshal(values)
	return &domain.Task{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		BoardID:      boardID,
		Title:        "task",
		CustomFields: raw,
	}
}

func makeDefinition(boardID uuid.UUID) *domain.FieldDefinition {
	return &domain.FieldDefinition{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		BoardID:   boardID,
		Name:      "Field",
		Type:      domain.FieldTypeText,
	}
}

func TestOrphanCleanupJob_Sweep_StripsOrphanedValues(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockDefs := new(MockFieldDefinitionRepository)

	boardID := uuid.New()
	liveDef := makeDefinition(boardID)
	orphanID := uuid.New().String()

	task := makeTask(boardID, map[string]interface{}{
		liveDef.ID.String(): "keep",
		orphanID:            "strip",
	})

	mockTasks.On("FindAll", mock.Anything).Return([]*domain.Task{task}, nil)
	mockDefs.On("FindByBoardID", mock.Anything, boardID).Return([]*domain.FieldDefinition{liveDef}, nil)
	mockTasks.On("Update", mock.Anything, task).Return(nil)

	job := NewOrphanCleanupJob(mockTasks, mockDefs, nil, zap.NewNop())

	cleaned, err := job.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, cleaned)

	var values map[string]interface{}
	assert.NoError(t, json.Unmarshal(task.CustomFields, &values))
	assert.Contains(t, values, liveDef.ID.String())
	assert.NotContains(t, values, orphanID)

	mockTasks.AssertExpectations(t)
	mockDefs.AssertExpectations(t)
}

func TestOrphanCleanupJob_Sweep_NoOrphans(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockDefs := new(MockFieldDefinitionRepository)

	boardID := uuid.New()
	liveDef := makeDefinition(boardID)
	task := makeTask(boardID, map[string]interface{}{
		liveDef.ID.String(): "keep",
	})

	mockTasks.On("FindAll", mock.Anything).Return([]*domain.Task{task}, nil)
	mockDefs.On("FindByBoardID", mock.Anything, boardID).Return([]*domain.FieldDefinition{liveDef}, nil)

	job := NewOrphanCleanupJob(mockTasks, mockDefs, nil, zap.NewNop())

	cleaned, err := job.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, cleaned)
	mockTasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrphanCleanupJob_Sweep_LoadsDefinitionsOncePerBoard(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockDefs := new(MockFieldDefinitionRepository)

	boardID := uuid.New()
	liveDef := makeDefinition(boardID)

	tasks := []*domain.Task{
		makeTask(boardID, map[string]interface{}{uuid.New().String(): "a"}),
		makeTask(boardID, map[string]interface{}{uuid.New().String(): "b"}),
		makeTask(boardID, map[string]interface{}{liveDef.ID.String(): "c"}),
	}

	mockTasks.On("FindAll", mock.Anything).Return(tasks, nil)
	mockDefs.On("FindByBoardID", mock.Anything, boardID).Return([]*domain.FieldDefinition{liveDef}, nil).Once()
	mockTasks.On("Update", mock.Anything, mock.Anything).Return(nil)

	job := NewOrphanCleanupJob(mockTasks, mockDefs, nil, zap.NewNop())

	cleaned, err := job.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, cleaned)
	mockDefs.AssertExpectations(t)
}

func TestOrphanCleanupJob_Sweep_SkipsTasksWithoutValues(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockDefs := new(MockFieldDefinitionRepository)

	task := &domain.Task{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		BoardID:   uuid.New(),
		Title:     "empty",
	}

	mockTasks.On("FindAll", mock.Anything).Return([]*domain.Task{task}, nil)

	job := NewOrphanCleanupJob(mockTasks, mockDefs, nil, zap.NewNop())

	cleaned, err := job.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, cleaned)
	mockDefs.AssertNotCalled(t, "FindByBoardID", mock.Anything, mock.Anything)
}

func TestOrphanCleanupJob_Sweep_FindAllError(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockDefs := new(MockFieldDefinitionRepository)

	mockTasks.On("FindAll", mock.Anything).Return(nil, errors.New("db down"))

	job := NewOrphanCleanupJob(mockTasks, mockDefs, nil, zap.NewNop())

	_, err := job.Sweep(context.Background())

	assert.Error(t, err)
}

func TestOrphanCleanupJob_Sweep_UpdateFailureDoesNotAbort(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockDefs := new(MockFieldDefinitionRepository)

	boardID := uuid.New()
	liveDef := makeDefinition(boardID)

	failing := makeTask(boardID, map[string]interface{}{uuid.New().String(): "a"})
	succeeding := makeTask(boardID, map[string]interface{}{uuid.New().String(): "b"})

	mockTasks.On("FindAll", mock.Anything).Return([]*domain.Task{failing, succeeding}, nil)
	mockDefs.On("FindByBoardID", mock.Anything, boardID).Return([]*domain.FieldDefinition{liveDef}, nil)
	mockTasks.On("Update", mock.Anything, failing).Return(errors.New("write failed"))
	mockTasks.On("Update", mock.Anything, succeeding).Return(nil)

	job := NewOrphanCleanupJob(mockTasks, mockDefs, nil, zap.NewNop())

	cleaned, err := job.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, cleaned, "only the successful update is counted")
	mockTasks.AssertExpectations(t)
}
