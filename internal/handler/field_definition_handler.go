package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
	"custom-field-api/internal/service"
)

type FieldDefinitionHandler struct {
	fieldDefinitionService service.FieldDefinitionService
}

func NewFieldDefinitionHandler(fieldDefinitionService service.FieldDefinitionService) *FieldDefinitionHandler {
	return &FieldDefinitionHandler{
		fieldDefinitionService: fieldDefinitionService,
	}
}

// CreateFieldDefinition godoc
// @Summary      Create a field definition
// @Description  Creates a custom field definition on a board
// @Tags         field-definitions
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Param        request body dto.CreateFieldDefinitionRequest true "Field definition to create"
// @Success      201 {object} response.SuccessResponse{data=dto.FieldDefinitionResponse} "Field definition created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Not a member of the organization"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Security     BearerAuth
// @Router       /boards/{boardId}/fields [post]
func (h *FieldDefinitionHandler) CreateFieldDefinition(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	var req dto.CreateFieldDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	def, err := h.fieldDefinitionService.CreateFieldDefinition(c.Request.Context(), auth, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, def)
}

// GetFieldDefinitions godoc
// @Summary      List field definitions
// @Description  Returns the board's field definitions ordered by position
// @Tags         field-definitions
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldDefinitionResponse} "Field definitions"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Security     BearerAuth
// @Router       /boards/{boardId}/fields [get]
func (h *FieldDefinitionHandler) GetFieldDefinitions(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	defs, err := h.fieldDefinitionService.GetFieldDefinitions(c.Request.Context(), auth, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, defs)
}

// UpdateFieldDefinition godoc
// @Summary      Update a field definition
// @Description  Partially updates a field definition. Config entries set to null are removed. Use validateExistingValues to reject updates that would invalidate stored task values, or clearInvalidValues to strip them.
// @Tags         field-definitions
// @Accept       json
// @Produce      json
// @Param        fieldId path string true "Field ID"
// @Param        validateExistingValues query bool false "Reject the update if stored values would become invalid"
// @Param        clearInvalidValues query bool false "Clear stored values that would become invalid"
// @Param        request body dto.UpdateFieldDefinitionRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.FieldDefinitionResponse} "Field definition updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Field definition not found"
// @Failure      409 {object} response.ErrorResponse "Type change or invalidated values"
// @Security     BearerAuth
// @Router       /fields/{fieldId} [put]
func (h *FieldDefinitionHandler) UpdateFieldDefinition(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	var req dto.UpdateFieldDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	opts := dto.UpdateFieldDefinitionOptions{
		ValidateExistingValues: c.Query("validateExistingValues") == "true",
		ClearInvalidValues:     c.Query("clearInvalidValues") == "true",
	}

	def, err := h.fieldDefinitionService.UpdateFieldDefinition(c.Request.Context(), auth, fieldID, &req, opts)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, def)
}

// DeleteFieldDefinition godoc
// @Summary      Delete a field definition
// @Description  Deletes a field definition. A field with stored task values is rejected unless cleanupTaskValues strips them or force bypasses the guards. Only organization admins may delete.
// @Tags         field-definitions
// @Produce      json
// @Param        fieldId path string true "Field ID"
// @Param        cleanupTaskValues query bool false "Strip the field's value from affected tasks first"
// @Param        force query bool false "Bypass the required-field and in-use guards"
// @Success      200 {object} response.SuccessResponse{data=dto.DeleteFieldDefinitionResponse} "Field definition deleted"
// @Failure      403 {object} response.ErrorResponse "Not an organization admin"
// @Failure      404 {object} response.ErrorResponse "Field definition not found"
// @Failure      409 {object} response.ErrorResponse "Field is in use or required"
// @Security     BearerAuth
// @Router       /fields/{fieldId} [delete]
func (h *FieldDefinitionHandler) DeleteFieldDefinition(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	opts := dto.DeleteFieldDefinitionOptions{
		CleanupTaskValues: c.Query("cleanupTaskValues") == "true",
		Force:             c.Query("force") == "true",
	}

	result, err := h.fieldDefinitionService.DeleteFieldDefinition(c.Request.Context(), auth, fieldID, opts)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ReorderFieldDefinitions godoc
// @Summary      Reorder field definitions
// @Description  Repositions all field definitions of a board in one atomic operation. Positions must form a gapless sequence covering every field.
// @Tags         field-definitions
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Param        request body dto.ReorderFieldDefinitionsRequest true "New positions for all fields"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldDefinitionResponse} "Field definitions reordered"
// @Failure      400 {object} response.ErrorResponse "Invalid positions"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Security     BearerAuth
// @Router       /boards/{boardId}/fields/reorder [put]
func (h *FieldDefinitionHandler) ReorderFieldDefinitions(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	var req dto.ReorderFieldDefinitionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	defs, err := h.fieldDefinitionService.ReorderFieldDefinitions(c.Request.Context(), auth, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, defs)
}
