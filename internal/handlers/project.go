package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker/internal/dto"
	apierrors "tracker/internal/errors"
	"tracker/internal/middleware"
	"tracker/internal/services"
)

// ProjectHandler exposes project lifecycle and membership management.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project owned by the current user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateProjectRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	project, err := h.projectService.CreateProject(req.Name, userID)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"project": dto.ToProjectDTO(*project)})
}

// ListProjects returns the projects the current user owns or belongs to.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		logInternalError(c, err)
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": dto.ToProjectDTOs(projects),
	})
}

// GetProject returns project details with members.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	project, members, err := h.projectService.GetProjectWithMembers(projectID, userID)
	if err != nil {
		respondProjectReadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": dto.ToProjectDTO(*project),
		"members": dto.ToProjectMemberDTOs(members),
	})
}

// RenameProject renames a project. Owner only.
func (h *ProjectHandler) RenameProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	type RenameRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	project, err := h.projectService.Rename(projectID, userID, req.Name)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"project": dto.ToProjectDTO(*project)})
}

// DeleteProject deletes a project, detaching its tasks. Owner only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(projectID, userID); err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"message": "Project deleted successfully"})
}

// AddMember adds a user to the project by username. Owner only.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	type MemberRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	if err := h.projectService.AddMember(projectID, userID, req.Username); err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"message": "Member added successfully"})
}

// RemoveMember removes a member, reassigning and unassigning their tasks
// inside the project. Owner only.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	type MemberRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	if err := h.projectService.RemoveMember(projectID, userID, req.Username); err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"message": "Member removed successfully"})
}

func respondProjectReadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotPermitted):
		apierrors.Forbidden(c, "")
	default:
		logInternalError(c, err)
		apierrors.InternalError(c, "")
	}
}
