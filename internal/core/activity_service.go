package core

import (
	"context"
	"fmt"

	"operation-theta/internal/db"
	"operation-theta/internal/models"
)

// activityService implements the ActivityService interface.
type activityService struct {
	activityRepo db.ActivityRepository
}

// NewActivityService creates a new ActivityService instance.
func NewActivityService(activityRepo db.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

// Record appends entry to the activity log.
func (s *activityService) Record(ctx context.Context, entry models.ActivityEntry) error {
	if s.activityRepo == nil {
		return fmt.Errorf("ActivityRepository not initialized in ActivityService")
	}
	if entry.Action == "" {
		return fmt.Errorf("%w: activity action is required", ErrInvalidInput)
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return storageError(err, "create activity entry")
	}
	return nil
}
