package repository

import (
	"time"

	"tracker/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// SetActive toggles the account active flag
	SetActive(id uint64, active bool) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithOwnerMembership creates the project and the owner's explicit
	// membership row in a single transaction
	CreateWithOwnerMembership(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// DeleteDetachingTasks deletes the project after clearing project_id on
	// its tasks and removing membership rows, all in one transaction
	DeleteDetachingTasks(id uint64) error

	// AddMember inserts a membership row; duplicate inserts are a no-op
	AddMember(member *models.ProjectMember) error

	// RemoveMemberCascade reassigns the member's owned tasks in the project
	// to newOwnerID, unassigns the member from the project's tasks, then
	// deletes the membership row, in one transaction
	RemoveMemberCascade(projectID, userID, newOwnerID uint64) error

	// IsMember reports whether the user has a membership row
	IsMember(projectID, userID uint64) (bool, error)

	// ListForUser lists projects where the user is owner or member
	ListForUser(userID uint64) ([]models.Project, error)

	// ListMembers lists all members of a project
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindWithProject finds a task with its project (and project owner)
	// loaded, when the task belongs to one
	FindWithProject(id uint64) (*models.Task, error)

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Update saves all task fields
	Update(task *models.Task) error

	// UpdateFields applies a partial update as a single statement
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// ListVisible lists tasks where the user is owner, assignee, or a
	// member/owner of the task's project
	ListVisible(userID uint64, missedOnly bool, limit int) ([]models.Task, error)

	// Sweep recomputes is_missed in two set-based updates against the given
	// calendar date; returns (marked missed, reverted to active)
	Sweep(today time.Time) (int64, int64, error)
}

// ActivityLogRepository records the audit feed for successful mutations
type ActivityLogRepository interface {
	Create(entry *models.ActivityLog) error
}
