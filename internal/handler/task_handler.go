package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"custom-field-api/internal/dto"
	"custom-field-api/internal/response"
	"custom-field-api/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask godoc
// @Summary      Create a task
// @Description  Creates a task on a board. Custom field values are validated against the board's field definitions.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Param        request body dto.CreateTaskRequest true "Task to create"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse} "Task created"
// @Failure      400 {object} response.ErrorResponse "Invalid custom field values"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Security     BearerAuth
// @Router       /boards/{boardId}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), auth, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, task)
}

// GetTask godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Security     BearerAuth
// @Router       /tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), auth, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// GetTasksByBoard godoc
// @Summary      List tasks of a board
// @Tags         tasks
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TaskResponse} "Tasks"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Security     BearerAuth
// @Router       /boards/{boardId}/tasks [get]
func (h *TaskHandler) GetTasksByBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetTasksByBoard(c.Request.Context(), auth, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tasks)
}

// UpdateTask godoc
// @Summary      Update a task
// @Description  Partially updates a task. Custom field entries set to null clear that field's value; the merged result is revalidated as a whole.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID"
// @Param        request body dto.UpdateTaskRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task updated"
// @Failure      400 {object} response.ErrorResponse "Invalid custom field values"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Security     BearerAuth
// @Router       /tasks/{taskId} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), auth, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID"
// @Success      200 {object} response.SuccessResponse "Task deleted"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Security     BearerAuth
// @Router       /tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	auth, ok := ExtractAuthContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), auth, taskID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"taskId": taskID})
}
