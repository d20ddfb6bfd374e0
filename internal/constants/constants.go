package constants

// Session keys
const (
	SessionKeyUserID    = "user_id"
	SessionKeyUserRole  = "user_role"
	SessionKeyCSRFToken = "csrf_token"
)

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyCSRFToken = "csrf_token"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxTaskListLimit  = 200
)
