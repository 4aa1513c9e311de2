package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"operation-theta/internal/db"
	"operation-theta/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo        db.UserRepository
	activityService ActivityService
	logger          *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, as ActivityService, logger *zap.Logger) UserService {
	return &userService{
		userRepo:        userRepo,
		activityService: as,
		logger:          logger,
	}
}

// Register retrieves the profile for identity. If it doesn't exist, it creates one.
// An existing profile only has its display fields refreshed; blank arguments keep
// the stored values.
func (s *userService) Register(ctx context.Context, identity models.Identity, displayName, photoURL string) (*models.User, bool, error) {
	if identity.UID == "" || identity.Email == "" {
		return nil, false, fmt.Errorf("%w: verified uid and email are required", ErrUnauthorized)
	}
	displayName = strings.TrimSpace(displayName)
	photoURL = strings.TrimSpace(photoURL)

	user, err := s.userRepo.GetByID(ctx, identity.UID)
	if errors.Is(err, db.ErrNotFound) {
		created, createErr := s.create(ctx, identity, displayName, photoURL)
		if !errors.Is(createErr, db.ErrAlreadyExists) {
			return created, createErr == nil, createErr
		}
		// Lost a race with a concurrent first registration; update instead.
		user, err = s.userRepo.GetByID(ctx, identity.UID)
	}
	if err != nil {
		return nil, false, storageError(err, "get user "+identity.UID)
	}

	user.ID = identity.UID
	user.Email = identity.Email
	if displayName != "" {
		user.DisplayName = displayName
	}
	if photoURL != "" {
		user.PhotoURL = photoURL
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, false, storageError(err, "update user "+identity.UID)
	}
	return user, false, nil
}

// create writes a new profile. db.ErrAlreadyExists is returned unwrapped so the
// caller can fall back to an update.
func (s *userService) create(ctx context.Context, identity models.Identity, displayName, photoURL string) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		ID:          identity.UID,
		Email:       identity.Email,
		DisplayName: firstNonEmpty(displayName, identity.DisplayName, defaultDisplayName(identity.Email)),
		PhotoURL:    firstNonEmpty(photoURL, identity.PhotoURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, err
		}
		return nil, storageError(err, "create user "+identity.UID)
	}
	s.logger.Info("User registered", zap.String("uid", user.ID), zap.String("email", user.Email))

	if s.activityService != nil {
		if err := s.activityService.Record(ctx, models.ActivityEntry{
			UserID: user.ID,
			Email:  user.Email,
			Action: models.ActionUserRegistered,
		}); err != nil {
			s.logger.Warn("Failed to record registration activity", zap.String("uid", user.ID), zap.Error(err))
		}
	}
	return user, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storageError(err, "user with ID "+userID)
	}
	return user, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
