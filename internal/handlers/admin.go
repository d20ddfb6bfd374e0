package handlers

import (
	"github.com/gin-gonic/gin"

	"tracker/internal/dto"
	"tracker/internal/middleware"
	"tracker/internal/services"
)

// AdminHandler covers account lifecycle actions reserved for admins.
type AdminHandler struct {
	authService *services.AuthService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
	}
}

// SetUserActive deactivates or reactivates an account. Deactivated users
// keep their data; they just cannot log in.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	targetID, ok := parseID(c)
	if !ok {
		return
	}

	type SetActiveRequest struct {
		Active *bool `json:"active" binding:"required"`
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	user, err := h.authService.SetUserActive(middleware.GetUserRole(c), targetID, *req.Active)
	if err != nil {
		mutationError(c, err)
		return
	}

	mutationOK(c, gin.H{"user": dto.ToUserDTO(*user)})
}
