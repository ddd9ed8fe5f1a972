package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
	"custom-field-api/internal/service"
)

type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard godoc
// @Summary      Create a board
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBoardRequest true "Board to create"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse} "Board created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Not a member of the organization"
// @Security     BearerAuth
// @Router       /boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), auth, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// GetBoard godoc
// @Summary      Get a board
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "Board"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Security     BearerAuth
// @Router       /boards/{boardId} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), auth, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// GetBoardsByOrganization godoc
// @Summary      List boards of an organization
// @Tags         boards
// @Produce      json
// @Param        orgId path string true "Organization ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse} "Boards"
// @Failure      401 {object} response.ErrorResponse "Not a member of the organization"
// @Security     BearerAuth
// @Router       /organizations/{orgId}/boards [get]
func (h *BoardHandler) GetBoardsByOrganization(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("orgId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid organization ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	boards, err := h.boardService.GetBoardsByOrganization(c.Request.Context(), auth, orgID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, boards)
}
