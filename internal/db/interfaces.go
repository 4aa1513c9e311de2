package db

import (
	"context"
	"errors"

	"operation-theta/internal/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when creating a document that exists.
	ErrAlreadyExists = errors.New("document already exists")
)

// MissionRepository defines storage operations on mission documents and their ledgers.
type MissionRepository interface {
	List(ctx context.Context) ([]*models.Mission, error)
	GetByID(ctx context.Context, missionID string) (*models.Mission, error)
	// AddCompletion adds identifier to the mission's completedBy set. It reports
	// alreadyCompleted=true, without writing, when the identifier is present.
	AddCompletion(ctx context.Context, missionID, identifier string) (alreadyCompleted bool, err error)
	// Upsert writes a mission definition, leaving any existing completedBy set untouched.
	Upsert(ctx context.Context, mission *models.Mission) error
}

// UserRepository defines storage operations on user profile documents.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// ActivityRepository appends entries to the activity log.
type ActivityRepository interface {
	Create(ctx context.Context, entry models.ActivityEntry) error
}
