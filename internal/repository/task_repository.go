package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
)

// TaskRepository defines the interface for task data access. Tasks embed
// their custom field values as a JSON map keyed by field definition ID.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	FindWithFieldValue(ctx context.Context, boardID uuid.UUID, fieldID string) ([]*domain.Task, error)
	FindAll(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// taskRepositoryImpl is the GORM implementation of TaskRepository
type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByBoardID finds all tasks of a board
func (r *taskRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindWithFieldValue finds the board's tasks that carry an entry for the
// given field definition ID in their custom field map. Kept as a store
// method so the scan can be pushed into the database instead of filtering
// every task in memory.
func (r *taskRepositoryImpl) FindWithFieldValue(ctx context.Context, boardID uuid.UUID, fieldID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Where(datatypes.JSONQuery("custom_fields").HasKey(fieldID)).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindAll returns every task; used by the orphaned-value cleanup job
func (r *taskRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete soft deletes a task
func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, id).Error
}
