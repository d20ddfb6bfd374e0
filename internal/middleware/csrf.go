package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"tracker/internal/constants"
	apierrors "tracker/internal/errors"
	"tracker/internal/utils"
)

// The guard keeps at most one live token per session. Two concurrent
// requests can both read the current token before either rotates it; that
// is an accepted weakness of the single-token design.

// IssueToken generates a fresh mutation token and stores it as the
// session's current one. Called at session start; the caller saves the
// session and embeds the token in its response.
func IssueToken(session sessions.Session) (string, error) {
	token, err := utils.GenerateMutationToken()
	if err != nil {
		return "", err
	}

	session.Set(constants.SessionKeyCSRFToken, token)
	return token, nil
}

// RequireCSRF validates and rotates the session's mutation token before any
// handler side effect. The token rotates on failure too, and the fresh
// token rides on every outcome, so the client's next request can succeed
// without reloading.
func RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		current, _ := session.Get(constants.SessionKeyCSRFToken).(string)
		submitted := extractToken(c)

		fresh, err := IssueToken(session)
		if err != nil {
			apierrors.InternalError(c, "Failed to rotate mutation token")
			c.Abort()
			return
		}
		if err := session.Save(); err != nil {
			apierrors.InternalError(c, "Failed to save session")
			c.Abort()
			return
		}

		// Handlers read the rotated token from context for the envelope.
		c.Set(constants.ContextKeyCSRFToken, fresh)

		if current == "" || submitted == "" || submitted != current {
			apierrors.MutationFailure(c, apierrors.StatusCSRFMismatch,
				apierrors.ErrCodeCSRFMismatch, "Invalid or expired mutation token", fresh)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentToken returns the rotated token RequireCSRF stored for this request.
func CurrentToken(c *gin.Context) string {
	token, _ := c.Get(constants.ContextKeyCSRFToken)
	if s, ok := token.(string); ok {
		return s
	}
	return ""
}

// extractToken reads the submitted token from the X-CSRF-Token header or,
// failing that, the csrf_token body field. The body is restored so the
// handler can still bind it.
func extractToken(c *gin.Context) string {
	if token := c.GetHeader("X-CSRF-Token"); token != "" {
		return token
	}

	if c.Request.Body == nil {
		return ""
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		CSRFToken string `json:"csrf_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.CSRFToken
}
