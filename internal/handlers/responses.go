package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "tracker/internal/errors"
	"tracker/internal/middleware"
	"tracker/internal/services"
)

// mutationOK writes the success envelope for a verified write. The rotated
// mutation token always rides along.
func mutationOK(c *gin.Context, extra gin.H) {
	body := gin.H{
		"success":    true,
		"csrf_token": middleware.CurrentToken(c),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// mutationError maps a service error onto the mutation envelope, keeping
// the status taxonomy fixed: 403 insufficient rights, 404 absent entity,
// 422 invalid input or rejected state transition, 500 otherwise.
func mutationError(c *gin.Context, err error) {
	token := middleware.CurrentToken(c)

	status := http.StatusInternalServerError
	code := apierrors.ErrCodeInternalError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		status = http.StatusNotFound
		code = apierrors.ErrCodeNotFound
		message = err.Error()
	case errors.Is(err, services.ErrNotPermitted),
		errors.Is(err, services.ErrAssigneeNotMember):
		status = http.StatusForbidden
		code = apierrors.ErrCodeForbidden
		message = err.Error()
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrDueDateInPast),
		errors.Is(err, services.ErrTaskHasNoProject):
		status = http.StatusUnprocessableEntity
		code = apierrors.ErrCodeInvalidInput
		message = err.Error()
	case errors.Is(err, services.ErrTaskMissed):
		status = http.StatusUnprocessableEntity
		code = apierrors.ErrCodeInvalidOperation
		message = err.Error()
	default:
		logInternalError(c, err)
	}

	apierrors.MutationFailure(c, status, code, message, token)
}

// invalidBody rejects a malformed mutation request body.
func invalidBody(c *gin.Context) {
	apierrors.MutationFailure(c, http.StatusUnprocessableEntity,
		apierrors.ErrCodeInvalidInput, "Invalid request body", middleware.CurrentToken(c))
}

// logInternalError records an unexpected failure with actor, IP, and path;
// none of that detail reaches the response body.
func logInternalError(c *gin.Context, err error) {
	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("ip", c.ClientIP()),
		zap.Error(err),
	}
	if userID, ok := middleware.GetUserID(c); ok {
		fields = append(fields, zap.Uint64("actor_id", userID))
	}
	zap.L().Error("request failed", fields...)
}
