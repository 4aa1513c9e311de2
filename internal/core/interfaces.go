package core

import (
	"context"

	"operation-theta/internal/models"
	"operation-theta/internal/puzzle"
)

// CompletionResult is the outcome of recording a completion in a mission ledger.
type CompletionResult struct {
	MissionID        string `json:"missionId"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
}

// SubmissionResult is the outcome of submitting an answer.
type SubmissionResult struct {
	MissionID        string `json:"missionId"`
	Correct          bool   `json:"correct"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
	XPAwarded        int    `json:"xpAwarded"`
}

// MissionService defines mission reads, answer submission and the completion ledger.
type MissionService interface {
	ListMissions(ctx context.Context) ([]*models.Mission, error)
	GetMission(ctx context.Context, missionID string) (*models.Mission, error)
	// SubmitAnswer validates answer and, when correct, records the completion.
	SubmitAnswer(ctx context.Context, missionID string, identity models.Identity, answer puzzle.Answer) (*SubmissionResult, error)
	// RecordCompletion adds identifier to the mission ledger. Repeating the call is a no-op
	// that reports AlreadyCompleted.
	RecordCompletion(ctx context.Context, missionID, identifier string) (*CompletionResult, error)
}

// LeaderboardService derives rankings from the mission ledgers on demand.
type LeaderboardService interface {
	Compute(ctx context.Context) ([]models.LeaderboardEntry, error)
	ProfileFor(ctx context.Context, identity models.Identity) (*models.UserProfile, error)
}

// UserService defines user profile operations.
type UserService interface {
	// Register creates the profile on first call and updates display fields afterwards.
	// The boolean reports whether the profile was created.
	Register(ctx context.Context, identity models.Identity, displayName, photoURL string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// ActivityService defines activity logging operations.
type ActivityService interface {
	Record(ctx context.Context, entry models.ActivityEntry) error
}
