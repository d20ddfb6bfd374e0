package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracker/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwnerMembership creates the project and the owner's explicit
// membership row atomically. Owner and member stay two distinct relations;
// the row here is what makes the owner a member.
func (r *GormProjectRepository) CreateWithOwnerMembership(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.OwnerID,
			JoinedAt:  time.Now(),
		}

		return tx.Create(&member).Error
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteDetachingTasks deletes a project. Tasks are detached, not deleted:
// their project_id is cleared first, then membership rows and the project
// row go, all in one transaction.
func (r *GormProjectRepository) DeleteDetachingTasks(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember inserts a membership row; a duplicate (project, user) pair is a
// no-op rather than an error.
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member).Error
}

// RemoveMemberCascade executes the removal cascade atomically: reassign the
// member's owned tasks in the project to the project owner, unassign the
// member from the project's tasks, delete the membership row. Ordered so a
// partial failure can only leave an extra-but-harmless membership row.
func (r *GormProjectRepository) RemoveMemberCascade(projectID, userID, newOwnerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("project_id = ? AND owner_id = ?", projectID, userID).
			Update("owner_id", newOwnerID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("project_id = ? AND assignee_id = ?", projectID, userID).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		return tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			Delete(&models.ProjectMember{}).Error
	})
}

// IsMember reports whether the user has a membership row
func (r *GormProjectRepository) IsMember(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListForUser lists projects where the user is owner or member
func (r *GormProjectRepository) ListForUser(userID uint64) ([]models.Project, error) {
	memberProjects := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	var projects []models.Project
	if err := r.db.
		Where("owner_id = ? OR id IN (?)", userID, memberProjects).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
