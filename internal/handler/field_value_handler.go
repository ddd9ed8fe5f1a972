package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
	"custom-field-api/internal/service"
)

type FieldValueHandler struct {
	fieldValueService service.FieldValueService
}

func NewFieldValueHandler(fieldValueService service.FieldValueService) *FieldValueHandler {
	return &FieldValueHandler{
		fieldValueService: fieldValueService,
	}
}

// ValidateFieldValue godoc
// @Summary      Validate a field value
// @Description  Dry-runs a value against a field definition without storing anything. A 200 response carries the validation verdict; an invalid value is not an HTTP error.
// @Tags         field-values
// @Accept       json
// @Produce      json
// @Param        fieldId path string true "Field ID"
// @Param        request body dto.ValidateFieldValueRequest true "Value to validate"
// @Success      200 {object} response.SuccessResponse{data=dto.FieldValueValidationResponse} "Validation verdict"
// @Failure      404 {object} response.ErrorResponse "Field definition not found"
// @Security     BearerAuth
// @Router       /fields/{fieldId}/validate [post]
func (h *FieldValueHandler) ValidateFieldValue(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	var req dto.ValidateFieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.fieldValueService.ValidateFieldValue(c.Request.Context(), auth, fieldID, req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
