package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tracker/internal/constants"
	"tracker/internal/dto"
	apierrors "tracker/internal/errors"
	"tracker/internal/middleware"
	"tracker/internal/services"
)

// TaskHandler exposes the task lifecycle over HTTP. Every mutation sits
// behind RequireAuth and RequireCSRF; reads sweep before listing.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the tasks visible to the current user, sweeping the
// missed flags first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	h.list(c, false)
}

// ListMissedTasks returns the visible tasks currently in the missed state.
func (h *TaskHandler) ListMissedTasks(c *gin.Context) {
	h.list(c, true)
}

func (h *TaskHandler) list(c *gin.Context, missedOnly bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	limit := constants.MaxTaskListLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			apierrors.UnprocessableEntity(c, "", "Invalid limit")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	tasks, err := h.taskService.List(userID, missedOnly, limit)
	if err != nil {
		logInternalError(c, err)
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   dto.ToTaskDTOs(tasks),
	})
}

// CreateTask creates a new task owned by the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateTaskRequest struct {
		Title     string     `json:"title" binding:"required"`
		DueDate   *time.Time `json:"due_date"`
		ProjectID *uint64    `json:"project_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:     req.Title,
		DueDate:   req.DueDate,
		ProjectID: req.ProjectID,
		OwnerID:   userID,
	})
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTitle renames a task.
func (h *TaskHandler) UpdateTitle(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateTitleRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	task, err := h.taskService.UpdateTitle(taskID, userID, req.Title)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateDueDate sets or clears a task's due date. A null or absent
// due_date clears it; the missed flag resets either way.
func (h *TaskHandler) UpdateDueDate(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateDueDateRequest struct {
		DueDate *time.Time `json:"due_date"`
	}

	var req UpdateDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	task, err := h.taskService.UpdateDueDate(taskID, userID, middleware.GetUserRole(c), req.DueDate)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"task": dto.ToTaskDTO(*task)})
}

// AssignTask assigns a project member to the task by username.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	type AssignRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	task, err := h.taskService.Assign(taskID, userID, req.Username)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UnassignTask clears the task's assignee.
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Unassign(taskID, userID)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"task": dto.ToTaskDTO(*task)})
}

// ToggleTask flips the completed flag; missed tasks are rejected.
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Toggle(taskID, userID)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"task": dto.ToTaskDTO(*task)})
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(taskID, userID); err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"message": "Task deleted successfully"})
}

// parseID reads the :id route parameter; an unparseable id maps to 404
// since no entity can exist under it.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		if token := middleware.CurrentToken(c); token != "" {
			apierrors.MutationFailure(c, http.StatusNotFound, apierrors.ErrCodeNotFound,
				"Resource not found", token)
		} else {
			apierrors.NotFound(c, "")
		}
		return 0, false
	}
	return id, true
}
