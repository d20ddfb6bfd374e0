package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tracker/internal/models"
	"tracker/internal/repository"
	"tracker/internal/utils"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrDueDateInPast     = errors.New("due date cannot be in the past")
	ErrTaskHasNoProject  = errors.New("task does not belong to a project")
	ErrAssigneeNotMember = errors.New("user is not a member of the task's project")
	ErrTaskMissed        = errors.New("a missed task cannot be completed until its due date is updated")
	ErrProjectNotFound   = errors.New("project not found")
)

// TaskService gates every task mutation by the actor's relationship to the
// task's owner/assignee/project-owner triple. Authorization always
// short-circuits before any write.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	sweeper     *SweepService
	activity    activityRecorder
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	sweeper *SweepService,
	activityRepo repository.ActivityLogRepository,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		sweeper:     sweeper,
		activity:    activityRecorder{repo: activityRepo},
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title     string
	DueDate   *time.Time
	ProjectID *uint64
	OwnerID   uint64
}

// CreateTask creates a new task owned by the actor.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		// TODO: membership of the target project is not required here, so
		// any authenticated user can create a task inside any project by
		// id. Pending product decision before tightening.
	}

	task := &models.Task{
		Title:     input.Title,
		DueDate:   input.DueDate,
		ProjectID: input.ProjectID,
		OwnerID:   input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activity.record(input.OwnerID, "task.create", "task", task.ID)

	return task, nil
}

// UpdateTitle renames a task. Task owner or project owner only.
func (s *TaskService) UpdateTitle(taskID, actorID uint64, title string) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	task, err := s.findForMutation(taskID)
	if err != nil {
		return nil, err
	}

	if !isTaskOwner(task, actorID) && !isProjectOwner(task, actorID) {
		return nil, ErrNotPermitted
	}

	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{"title": title}); err != nil {
		return nil, fmt.Errorf("failed to update title: %w", err)
	}

	s.activity.record(actorID, "task.update_title", "task", task.ID)

	task.Title = title
	return task, nil
}

// UpdateDueDate changes or clears a task's due date. Task owner, assignee,
// project owner, or an admin. A present date must not be before today.
// Always resets is_missed; clearing overdue status is the user's explicit
// acknowledgment and the next sweep re-evaluates.
func (s *TaskService) UpdateDueDate(taskID, actorID uint64, actorRole models.UserRole, dueDate *time.Time) (*models.Task, error) {
	task, err := s.findForMutation(taskID)
	if err != nil {
		return nil, err
	}

	permitted := isTaskOwner(task, actorID) ||
		isAssignee(task, actorID) ||
		isProjectOwner(task, actorID) ||
		actorRole == models.RoleAdmin
	if !permitted {
		return nil, ErrNotPermitted
	}

	if dueDate != nil && dueDate.Before(utils.Today()) {
		return nil, ErrDueDateInPast
	}

	fields := map[string]interface{}{
		"due_date":  dueDate,
		"is_missed": false,
	}
	if err := s.taskRepo.UpdateFields(task.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update due date: %w", err)
	}

	s.activity.record(actorID, "task.update_due_date", "task", task.ID)

	task.DueDate = dueDate
	task.IsMissed = false
	return task, nil
}

// Assign sets the task's assignee by username. Task owner or project owner
// only; the task must belong to a project and the target must be one of its
// members.
func (s *TaskService) Assign(taskID, actorID uint64, username string) (*models.Task, error) {
	task, err := s.findForMutation(taskID)
	if err != nil {
		return nil, err
	}

	if !isTaskOwner(task, actorID) && !isProjectOwner(task, actorID) {
		return nil, ErrNotPermitted
	}

	if task.ProjectID == nil {
		return nil, ErrTaskHasNoProject
	}

	assignee, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	isMember, err := s.projectRepo.IsMember(*task.ProjectID, assignee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify project membership: %w", err)
	}
	if !isMember {
		return nil, ErrAssigneeNotMember
	}

	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{"assignee_id": assignee.ID}); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	s.activity.record(actorID, "task.assign", "task", task.ID)

	task.AssigneeID = &assignee.ID
	return task, nil
}

// Unassign clears the task's assignee. Same actors as Assign.
func (s *TaskService) Unassign(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.findForMutation(taskID)
	if err != nil {
		return nil, err
	}

	if !isTaskOwner(task, actorID) && !isProjectOwner(task, actorID) {
		return nil, ErrNotPermitted
	}

	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{"assignee_id": nil}); err != nil {
		return nil, fmt.Errorf("failed to unassign task: %w", err)
	}

	s.activity.record(actorID, "task.unassign", "task", task.ID)

	task.AssigneeID = nil
	return task, nil
}

// Toggle flips the completed flag. Task owner, assignee, or project owner.
// A missed task is rejected here, in the engine, so every caller gets the
// check regardless of which surface invoked it.
func (s *TaskService) Toggle(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.findForMutation(taskID)
	if err != nil {
		return nil, err
	}

	permitted := isTaskOwner(task, actorID) ||
		isAssignee(task, actorID) ||
		isProjectOwner(task, actorID)
	if !permitted {
		return nil, ErrNotPermitted
	}

	if task.IsMissed {
		return nil, ErrTaskMissed
	}

	completed := !task.Completed
	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{"completed": completed}); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	s.activity.record(actorID, "task.toggle", "task", task.ID)

	// Reopening does not re-derive is_missed; the next sweep does.
	task.Completed = completed
	return task, nil
}

// Delete removes a task. Task owner or project owner only.
func (s *TaskService) Delete(taskID, actorID uint64) error {
	task, err := s.findForMutation(taskID)
	if err != nil {
		return err
	}

	if !isTaskOwner(task, actorID) && !isProjectOwner(task, actorID) {
		return ErrNotPermitted
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.activity.record(actorID, "task.delete", "task", task.ID)

	return nil
}

// List sweeps first, then returns the tasks visible to the user, so every
// read is self-healing with respect to overdue detection.
func (s *TaskService) List(userID uint64, missedOnly bool, limit int) ([]models.Task, error) {
	if _, _, err := s.sweeper.Run(); err != nil {
		return nil, fmt.Errorf("failed to sweep tasks: %w", err)
	}

	tasks, err := s.taskRepo.ListVisible(userID, missedOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// findForMutation loads the owner/assignee/project-owner triple in one
// lookup and maps a missing row to ErrTaskNotFound.
func (s *TaskService) findForMutation(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindWithProject(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func isTaskOwner(task *models.Task, userID uint64) bool {
	return task.OwnerID == userID
}

func isAssignee(task *models.Task, userID uint64) bool {
	return task.AssigneeID != nil && *task.AssigneeID == userID
}

func isProjectOwner(task *models.Task, userID uint64) bool {
	return task.Project != nil && task.Project.OwnerID == userID
}
