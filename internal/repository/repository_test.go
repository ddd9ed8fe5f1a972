package repository

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"custom-field-api/internal/database"
	"custom-field-api/internal/domain"
)

// setupTestDB creates an isolated in-memory database per test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	return db
}

func createTestBoard(t *testing.T, db *gorm.DB) *domain.Board {
	t.Helper()

	board := &domain.Board{
		OrganizationID: uuid.New(),
		OwnerID:        uuid.New(),
		Name:           "Test Board",
	}
	require.NoError(t, db.Create(board).Error)
	return board
}

func createTestDefinition(t *testing.T, db *gorm.DB, board *domain.Board, name string, position int) *domain.FieldDefinition {
	t.Helper()

	def := &domain.FieldDefinition{
		BoardID:        board.ID,
		OrganizationID: board.OrganizationID,
		Name:           name,
		Type:           domain.FieldTypeText,
		Position:       position,
	}
	require.NoError(t, db.Create(def).Error)
	return def
}

func createTestTask(t *testing.T, db *gorm.DB, board *domain.Board, title string, customFields map[string]interface{}) *domain.Task {
	t.Helper()

	task := &domain.Task{
		BoardID:  board.ID,
		AuthorID: uuid.New(),
		Title:    title,
	}
	if customFields != nil {
		raw, err := json.Marshal(customFields)
		require.NoError(t, err)
		task.CustomFields = raw
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
