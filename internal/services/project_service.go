package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tracker/internal/models"
	"tracker/internal/repository"
)

var (
	ErrProjectNameRequired = errors.New("project name cannot be empty")
	ErrMemberNotFound      = errors.New("project member not found")
)

// ProjectService provides business logic for project operations. All
// mutations are owner-only; the owner check always runs before any write.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	activity    activityRecorder
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityLogRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		activity:    activityRecorder{repo: activityRepo},
	}
}

// CreateProject creates a project; the creator becomes owner and gets an
// explicit membership row.
func (s *ProjectService) CreateProject(name string, ownerID uint64) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}

	if err := s.projectRepo.CreateWithOwnerMembership(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.activity.record(ownerID, "project.create", "project", project.ID)

	return project, nil
}

// ListProjects returns projects where the user is owner or member. Never a
// global listing.
func (s *ProjectService) ListProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProjectWithMembers returns a project and its members. Caller must be
// owner or member.
func (s *ProjectService) GetProjectWithMembers(projectID, userID uint64) (*models.Project, []models.ProjectMember, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, nil, err
	}

	if project.OwnerID != userID {
		isMember, err := s.projectRepo.IsMember(projectID, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to verify membership: %w", err)
		}
		if !isMember {
			return nil, nil, ErrNotPermitted
		}
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return project, members, nil
}

// Rename changes the project name. Owner only.
func (s *ProjectService) Rename(projectID, actorID uint64, name string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrProjectNameRequired
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if project.OwnerID != actorID {
		return nil, ErrNotPermitted
	}

	project.Name = name
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to rename project: %w", err)
	}

	s.activity.record(actorID, "project.rename", "project", project.ID)

	return project, nil
}

// Delete removes the project. Owner only. Tasks are detached, not deleted.
func (s *ProjectService) Delete(projectID, actorID uint64) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if project.OwnerID != actorID {
		return ErrNotPermitted
	}

	if err := s.projectRepo.DeleteDetachingTasks(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.activity.record(actorID, "project.delete", "project", projectID)

	return nil
}

// AddMember adds a user to the project by username. Owner only; adding an
// existing member is a no-op success.
func (s *ProjectService) AddMember(projectID, actorID uint64, username string) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if project.OwnerID != actorID {
		return ErrNotPermitted
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.activity.record(actorID, "project.add_member", "project", projectID)

	return nil
}

// RemoveMember removes a user from the project by username. Owner only.
// The cascade runs as one transaction: the member's owned tasks in the
// project are reassigned to the project owner, their assignments in the
// project are cleared, then the membership row goes.
func (s *ProjectService) RemoveMember(projectID, actorID uint64, username string) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if project.OwnerID != actorID {
		return ErrNotPermitted
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	isMember, err := s.projectRepo.IsMember(projectID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to verify membership: %w", err)
	}
	if !isMember {
		return ErrMemberNotFound
	}

	if err := s.projectRepo.RemoveMemberCascade(projectID, user.ID, project.OwnerID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.activity.record(actorID, "project.remove_member", "project", projectID)

	return nil
}

func (s *ProjectService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
