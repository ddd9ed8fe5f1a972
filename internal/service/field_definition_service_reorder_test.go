package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
)

func makeBoardDefinitions(boardID, orgID uuid.UUID, count int) []*domain.FieldDefinition {
	defs := make([]*domain.FieldDefinition, count)
	for i := 0; i < count; i++ {
		def := &domain.FieldDefinition{
			BoardID:        boardID,
			OrganizationID: orgID,
			Name:           "Field",
			Type:           domain.FieldTypeText,
			Position:       i,
		}
		def.ID = uuid.New()
		defs[i] = def
	}
	return defs
}

func TestFieldDefinitionService_ReorderFieldDefinitions(t *testing.T) {
	boardID := uuid.New()
	orgID := uuid.New()
	defs := makeBoardDefinitions(boardID, orgID, 3)

	fullReorder := func() []dto.FieldPosition {
		return []dto.FieldPosition{
			{FieldID: defs[0].ID, Position: 2},
			{FieldID: defs[1].ID, Position: 0},
			{FieldID: defs[2].ID, Position: 1},
		}
	}

	tests := []struct {
		name        string
		positions   []dto.FieldPosition
		mockBoard   func(*MockBoardRepository)
		mockDefs    []*domain.FieldDefinition
		wantErr     bool
		wantErrCode string
	}{
		{
			name:      "success: full permutation",
			positions: fullReorder(),
			mockDefs:  defs,
		},
		{
			name:        "failure: empty positions",
			positions:   nil,
			mockDefs:    defs,
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "failure: duplicate field",
			positions: []dto.FieldPosition{
				{FieldID: defs[0].ID, Position: 0},
				{FieldID: defs[0].ID, Position: 1},
				{FieldID: defs[1].ID, Position: 2},
			},
			mockDefs:    defs,
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "failure: duplicate position",
			positions: []dto.FieldPosition{
				{FieldID: defs[0].ID, Position: 0},
				{FieldID: defs[1].ID, Position: 0},
				{FieldID: defs[2].ID, Position: 1},
			},
			mockDefs:    defs,
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "failure: field from another board",
			positions: []dto.FieldPosition{
				{FieldID: defs[0].ID, Position: 0},
				{FieldID: defs[1].ID, Position: 1},
				{FieldID: uuid.New(), Position: 2},
			},
			mockDefs:    defs,
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "failure: incomplete coverage",
			positions: []dto.FieldPosition{
				{FieldID: defs[0].ID, Position: 0},
				{FieldID: defs[1].ID, Position: 1},
			},
			mockDefs:    defs,
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "failure: positions with a gap",
			positions: []dto.FieldPosition{
				{FieldID: defs[0].ID, Position: 0},
				{FieldID: defs[1].ID, Position: 1},
				{FieldID: defs[2].ID, Position: 3},
			},
			mockDefs:    defs,
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:        "failure: board has no definitions",
			positions:   fullReorder(),
			mockDefs:    nil,
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:      "failure: board not found",
			positions: fullReorder(),
			mockBoard: func(m *MockBoardRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			mockDefs:    defs,
			wantErr:     true,
			wantErrCode: response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockBoardRepo := &MockBoardRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
					return &domain.Board{OrganizationID: orgID}, nil
				},
			}
			if tt.mockBoard != nil {
				tt.mockBoard(mockBoardRepo)
			}

			reorderCalled := false
			mockDefRepo := &MockFieldDefinitionRepository{
				FindByBoardIDFunc: func(ctx context.Context, boardID uuid.UUID) ([]*domain.FieldDefinition, error) {
					return tt.mockDefs, nil
				},
				ReorderFunc: func(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int) ([]*domain.FieldDefinition, error) {
					reorderCalled = true
					reordered := make([]*domain.FieldDefinition, len(tt.mockDefs))
					copy(reordered, tt.mockDefs)
					for _, def := range reordered {
						def.Position = positions[def.ID]
					}
					return reordered, nil
				},
			}

			notifier := &MockFieldEventNotifier{}
			service := newTestFieldDefinitionService(mockDefRepo, mockBoardRepo, &MockTaskRepository{}, &MockDefinitionCache{}, notifier)

			// When
			got, err := service.ReorderFieldDefinitions(context.Background(), nil, boardID, &dto.ReorderFieldDefinitionsRequest{
				Positions: tt.positions,
			})

			// Then
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReorderFieldDefinitions() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if appErr, ok := err.(*response.AppError); ok {
					if appErr.Code != tt.wantErrCode {
						t.Errorf("ReorderFieldDefinitions() error code = %v, want %v", appErr.Code, tt.wantErrCode)
					}
				}
				if reorderCalled {
					t.Error("Reorder was applied despite a rejected request")
				}
				return
			}
			if err != nil {
				t.Errorf("ReorderFieldDefinitions() unexpected error = %v", err)
				return
			}
			if len(got) != len(tt.mockDefs) {
				t.Errorf("ReorderFieldDefinitions() count = %d, want %d", len(got), len(tt.mockDefs))
			}
			want := map[uuid.UUID]int{defs[0].ID: 2, defs[1].ID: 0, defs[2].ID: 1}
			for _, resp := range got {
				if resp.Position != want[resp.FieldID] {
					t.Errorf("Field %s position = %d, want %d", resp.FieldID, resp.Position, want[resp.FieldID])
				}
			}
			if len(notifier.Events) != 1 || notifier.Events[0].Action != dto.FieldChangeReordered {
				t.Errorf("Expected one reordered event, got %v", notifier.Events)
			}
		})
	}
}
