package services

import (
	"errors"

	"go.uber.org/zap"

	"tracker/internal/models"
	"tracker/internal/repository"
)

// ErrNotPermitted is returned whenever an authenticated actor lacks the
// rights for an operation, across all services.
var ErrNotPermitted = errors.New("not permitted")

// activityRecorder writes the audit feed for successful mutations.
// Best-effort: a failed write is logged and never surfaced to the caller.
type activityRecorder struct {
	repo repository.ActivityLogRepository
}

func (a *activityRecorder) record(actorID uint64, action, entityType string, entityID uint64) {
	if a.repo == nil {
		return
	}

	entry := &models.ActivityLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if err := a.repo.Create(entry); err != nil {
		zap.L().Warn("failed to record activity",
			zap.Uint64("actor_id", actorID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
