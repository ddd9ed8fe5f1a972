package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
)

func setupFieldValueRouter(svc *MockFieldValueService, auth *domain.AuthContext) *gin.Engine {
	r := gin.New()
	h := NewFieldValueHandler(svc)
	r.POST("/fields/:fieldId/validate", injectAuth(auth), h.ValidateFieldValue)
	return r
}

func TestValidateFieldValue(t *testing.T) {
	fieldID := uuid.New()

	tests := []struct {
		name        string
		fieldParam  string
		body        string
		serviceFunc func(ctx context.Context, auth *domain.AuthContext, fID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error)
		wantStatus  int
		wantValid   bool
		wantVerdict bool
		wantErrCode string
	}{
		{
			name:       "valid value",
			fieldParam: fieldID.String(),
			body:       `{"value":"high"}`,
			serviceFunc: func(ctx context.Context, auth *domain.AuthContext, fID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error) {
				assert.Equal(t, "high", value)
				return &dto.FieldValueValidationResponse{IsValid: true}, nil
			},
			wantStatus:  http.StatusOK,
			wantVerdict: true,
			wantValid:   true,
		},
		{
			name:       "invalid value is still a 200",
			fieldParam: fieldID.String(),
			body:       `{"value":"urgent"}`,
			serviceFunc: func(ctx context.Context, auth *domain.AuthContext, fID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error) {
				return &dto.FieldValueValidationResponse{IsValid: false, Error: "value is not an allowed option"}, nil
			},
			wantStatus:  http.StatusOK,
			wantVerdict: true,
			wantValid:   false,
		},
		{
			name:       "null value verdict",
			fieldParam: fieldID.String(),
			body:       `{"value":null}`,
			serviceFunc: func(ctx context.Context, auth *domain.AuthContext, fID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error) {
				assert.Nil(t, value)
				return &dto.FieldValueValidationResponse{IsValid: false, Error: "value is required"}, nil
			},
			wantStatus:  http.StatusOK,
			wantVerdict: true,
			wantValid:   false,
		},
		{
			name:        "invalid field ID",
			fieldParam:  "not-a-uuid",
			body:        `{"value":"high"}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:       "field not found",
			fieldParam: fieldID.String(),
			body:       `{"value":"high"}`,
			serviceFunc: func(ctx context.Context, auth *domain.AuthContext, fID uuid.UUID, value interface{}) (*dto.FieldValueValidationResponse, error) {
				return nil, response.NewNotFoundError("Field definition not found", "")
			},
			wantStatus:  http.StatusNotFound,
			wantErrCode: response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockFieldValueService{ValidateFieldValueFunc: tt.serviceFunc}
			r := setupFieldValueRouter(svc, testAuthContext(uuid.New()))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/fields/"+tt.fieldParam+"/validate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantVerdict {
				var resp struct {
					Success bool                             `json:"success"`
					Data    dto.FieldValueValidationResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.Equal(t, tt.wantValid, resp.Data.IsValid)
				if !tt.wantValid {
					assert.NotEmpty(t, resp.Data.Error)
				}
			}

			if tt.wantErrCode != "" {
				resp := decodeErrorResponse(t, w)
				assert.Equal(t, tt.wantErrCode, resp.Error.Code)
			}
		})
	}
}
