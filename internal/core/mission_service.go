package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"operation-theta/internal/db"
	"operation-theta/internal/events"
	"operation-theta/internal/models"
	"operation-theta/internal/puzzle"
)

// missionService implements the MissionService interface.
type missionService struct {
	missionRepo     db.MissionRepository
	activityService ActivityService
	publisher       events.Publisher
	logger          *zap.Logger
}

// NewMissionService creates a new MissionService instance.
func NewMissionService(
	mr db.MissionRepository,
	as ActivityService,
	pub events.Publisher,
	logger *zap.Logger,
) MissionService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &missionService{
		missionRepo:     mr,
		activityService: as,
		publisher:       pub,
		logger:          logger,
	}
}

// ListMissions returns every mission definition with its ledger.
func (s *missionService) ListMissions(ctx context.Context) ([]*models.Mission, error) {
	missions, err := s.missionRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "list missions")
	}
	return missions, nil
}

// GetMission returns a single mission.
func (s *missionService) GetMission(ctx context.Context, missionID string) (*models.Mission, error) {
	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return nil, fmt.Errorf("%w: mission ID is required", ErrInvalidInput)
	}
	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("mission '%s'", missionID))
	}
	return mission, nil
}

// RecordCompletion adds identifier to the mission ledger. The repository performs
// the membership check and the set-union write atomically, so retries and
// concurrent duplicates never add a second entry.
func (s *missionService) RecordCompletion(ctx context.Context, missionID, identifier string) (*CompletionResult, error) {
	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return nil, fmt.Errorf("%w: mission ID is required", ErrInvalidInput)
	}
	if identifier == "" {
		return nil, fmt.Errorf("%w: user identifier is required", ErrInvalidInput)
	}

	alreadyCompleted, err := s.missionRepo.AddCompletion(ctx, missionID, identifier)
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("record completion of mission '%s'", missionID))
	}
	return &CompletionResult{MissionID: missionID, AlreadyCompleted: alreadyCompleted}, nil
}

// SubmitAnswer judges answer against the mission's key. Incorrect answers are
// reported without touching the ledger; correct ones are recorded, and XP is
// awarded only by the call that newly records the completion.
func (s *missionService) SubmitAnswer(ctx context.Context, missionID string, identity models.Identity, answer puzzle.Answer) (*SubmissionResult, error) {
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: verified email is required to complete missions", ErrUnauthorized)
	}

	mission, err := s.GetMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if !puzzle.Validate(mission.PuzzleType, mission.AnswerKey, answer) {
		s.recordActivity(ctx, models.ActivityEntry{
			UserID:    identity.UID,
			Email:     identity.Email,
			Action:    models.ActionAnswerRejected,
			MissionID: mission.ID,
		})
		return &SubmissionResult{MissionID: mission.ID}, nil
	}

	completion, err := s.RecordCompletion(ctx, mission.ID, identity.Email)
	if err != nil {
		return nil, err
	}

	result := &SubmissionResult{
		MissionID:        mission.ID,
		Correct:          true,
		AlreadyCompleted: completion.AlreadyCompleted,
	}
	if completion.AlreadyCompleted {
		return result, nil
	}
	result.XPAwarded = mission.XP

	s.logger.Info("Mission completed",
		zap.String("missionID", mission.ID),
		zap.String("email", identity.Email),
		zap.Int("xp", mission.XP))

	s.recordActivity(ctx, models.ActivityEntry{
		UserID:    identity.UID,
		Email:     identity.Email,
		Action:    models.ActionMissionCompleted,
		MissionID: mission.ID,
		Details:   map[string]interface{}{"xp": mission.XP},
	})

	event := events.CompletionEvent{
		MissionID:   mission.ID,
		UID:         identity.UID,
		Email:       identity.Email,
		XP:          mission.XP,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishCompletion(ctx, event); err != nil {
		s.logger.Warn("Failed to publish completion event",
			zap.String("missionID", mission.ID), zap.Error(err))
	}

	return result, nil
}

// recordActivity writes to the activity log. The ledger is the source of truth,
// so a failure here is logged and otherwise ignored.
func (s *missionService) recordActivity(ctx context.Context, entry models.ActivityEntry) {
	if s.activityService == nil {
		return
	}
	if err := s.activityService.Record(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to record activity",
			zap.String("action", entry.Action),
			zap.String("missionID", entry.MissionID),
			zap.Error(err))
	}
}
