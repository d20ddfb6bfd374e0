package repository

import (
	"time"

	"gorm.io/gorm"

	"tracker/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindWithProject finds a task with its project loaded, so authorization
// can read the owner/assignee/project-owner triple from one lookup.
func (r *GormTaskRepository) FindWithProject(id uint64) (*models.Task, error) {
	return r.FindByID(id, "Project")
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// Update saves all task fields
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateFields applies a partial update as a single statement. Concurrent
// sweeps interleaving with this are last-write-wins.
func (r *GormTaskRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	result := r.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// ListVisible lists tasks where the user is owner, assignee, or a
// member/owner of the task's project
func (r *GormTaskRepository) ListVisible(userID uint64, missedOnly bool, limit int) ([]models.Task, error) {
	memberProjects := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	ownedProjects := r.db.Model(&models.Project{}).
		Select("id").
		Where("owner_id = ?", userID)

	query := r.db.
		Preload("Owner").
		Preload("Assignee").
		Preload("Project").
		Where("owner_id = ? OR assignee_id = ? OR project_id IN (?) OR project_id IN (?)",
			userID, userID, memberProjects, ownedProjects)

	if missedOnly {
		query = query.Where("is_missed = ?", true)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Sweep recomputes is_missed against the given calendar date in two
// set-based updates. Idempotent; safe to run concurrently with traffic.
func (r *GormTaskRepository) Sweep(today time.Time) (int64, int64, error) {
	missed := r.db.Model(&models.Task{}).
		Where("completed = ? AND is_missed = ? AND due_date IS NOT NULL AND due_date < ?", false, false, today).
		Update("is_missed", true)
	if missed.Error != nil {
		return 0, 0, missed.Error
	}

	// Reconciles rows whose due date moved forward outside the API, or a
	// clock change.
	revived := r.db.Model(&models.Task{}).
		Where("completed = ? AND is_missed = ? AND (due_date IS NULL OR due_date >= ?)", false, true, today).
		Update("is_missed", false)
	if revived.Error != nil {
		return missed.RowsAffected, 0, revived.Error
	}

	return missed.RowsAffected, revived.RowsAffected, nil
}
