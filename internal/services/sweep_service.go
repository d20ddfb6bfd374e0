package services

import (
	"fmt"

	"go.uber.org/zap"

	"tracker/internal/repository"
	"tracker/internal/utils"
)

// SweepService recomputes the is_missed flag over all tasks. The state
// machine per task, over (completed, is_missed):
//
//	active    -> missed: due date before today, not completed
//	missed    -> active: due date cleared or moved to today or later
//	completed rows are never touched here
//
// The pass is set-based and idempotent; it runs before every task listing
// and from the scheduled entry point, arbitrarily often.
type SweepService struct {
	taskRepo repository.TaskRepository
}

// NewSweepService creates a new SweepService
func NewSweepService(taskRepo repository.TaskRepository) *SweepService {
	return &SweepService{taskRepo: taskRepo}
}

// Run executes one sweep pass against the current calendar date and returns
// how many rows were marked missed and how many reverted to active.
func (s *SweepService) Run() (int64, int64, error) {
	missed, revived, err := s.taskRepo.Sweep(utils.Today())
	if err != nil {
		return missed, revived, fmt.Errorf("sweep failed: %w", err)
	}

	if missed > 0 || revived > 0 {
		zap.L().Info("sweep pass completed",
			zap.Int64("marked_missed", missed),
			zap.Int64("reverted_active", revived),
		)
	}

	return missed, revived, nil
}
