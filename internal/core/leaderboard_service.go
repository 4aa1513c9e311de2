package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"operation-theta/internal/db"
	"operation-theta/internal/models"
)

// tally accumulates one identifier's totals while folding over mission ledgers.
type tally struct {
	identifier string
	completed  int
	totalXP    int
	missionIDs []string
}

// aggregate folds every mission's completedBy set into per-identifier totals.
// Missions are visited in order, so missionIDs follows the listing order.
func aggregate(missions []*models.Mission) map[string]*tally {
	totals := make(map[string]*tally)
	for _, mission := range missions {
		if mission == nil {
			continue
		}
		for _, identifier := range mission.CompletedBy {
			t, ok := totals[identifier]
			if !ok {
				t = &tally{identifier: identifier}
				totals[identifier] = t
			}
			t.completed++
			t.totalXP += mission.XP
			t.missionIDs = append(t.missionIDs, mission.ID)
		}
	}
	return totals
}

// rank orders tallies by total XP descending, then completed count descending,
// then identifier ascending, which makes the ordering fully deterministic.
func rank(totals map[string]*tally) []*tally {
	ordered := make([]*tally, 0, len(totals))
	for _, t := range totals {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.totalXP != b.totalXP {
			return a.totalXP > b.totalXP
		}
		if a.completed != b.completed {
			return a.completed > b.completed
		}
		return a.identifier < b.identifier
	})
	return ordered
}

// leaderboardService implements the LeaderboardService interface.
type leaderboardService struct {
	missionRepo db.MissionRepository
	userRepo    db.UserRepository
	logger      *zap.Logger
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(mr db.MissionRepository, ur db.UserRepository, logger *zap.Logger) LeaderboardService {
	return &leaderboardService{missionRepo: mr, userRepo: ur, logger: logger}
}

// Compute reads all missions and user profiles concurrently and folds the
// ledgers into a ranked leaderboard. A failed mission read fails the whole call;
// a failed profile read only falls back to default display names.
func (s *leaderboardService) Compute(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var (
		missions []*models.Mission
		users    []*models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		missions, err = s.missionRepo.List(gctx)
		if err != nil {
			return storageError(err, "list missions for leaderboard")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gctx)
		if err != nil && gctx.Err() == nil {
			// Profiles only supply display names; the ledgers alone rank the board.
			s.logger.Warn("User profiles unavailable, using default display names", zap.Error(err))
			users = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, unavailable(err)
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		if u != nil && u.Email != "" && u.DisplayName != "" {
			names[u.Email] = u.DisplayName
		}
	}

	ordered := rank(aggregate(missions))
	entries := make([]models.LeaderboardEntry, 0, len(ordered))
	for i, t := range ordered {
		name, ok := names[t.identifier]
		if !ok {
			name = defaultDisplayName(t.identifier)
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:              i + 1,
			Email:             t.identifier,
			DisplayName:       name,
			CompletedMissions: t.completed,
			TotalXP:           t.totalXP,
		})
	}
	return entries, nil
}

// ProfileFor is the leaderboard fold filtered to a single identity. A user who
// never registered a profile document still gets a profile built from the token.
func (s *leaderboardService) ProfileFor(ctx context.Context, identity models.Identity) (*models.UserProfile, error) {
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: verified email is required", ErrUnauthorized)
	}

	missions, err := s.missionRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "list missions for profile")
	}

	profile := &models.UserProfile{
		UID:                 identity.UID,
		Email:               identity.Email,
		DisplayName:         identity.DisplayName,
		PhotoURL:            identity.PhotoURL,
		CompletedMissionIDs: []string{},
	}

	if identity.UID != "" {
		user, err := s.userRepo.GetByID(ctx, identity.UID)
		switch {
		case err == nil:
			if user.DisplayName != "" {
				profile.DisplayName = user.DisplayName
			}
			if user.PhotoURL != "" {
				profile.PhotoURL = user.PhotoURL
			}
		case errors.Is(err, db.ErrNotFound):
			s.logger.Debug("Profile requested before registration", zap.String("uid", identity.UID))
		default:
			return nil, storageError(err, "get user for profile")
		}
	}
	if profile.DisplayName == "" {
		profile.DisplayName = defaultDisplayName(identity.Email)
	}

	if t, ok := aggregate(missions)[identity.Email]; ok {
		profile.CompletedMissions = t.completed
		profile.TotalXP = t.totalXP
		profile.CompletedMissionIDs = t.missionIDs
	}
	return profile, nil
}

// unavailable keeps the classified error from the errgroup; anything that slipped
// through unclassified, such as a cancelled context, is a repository failure.
func unavailable(err error) error {
	if errors.Is(err, ErrRepositoryUnavailable) || errors.Is(err, ErrNotFound) {
		return err
	}
	return errors.Join(ErrRepositoryUnavailable, err)
}

// defaultDisplayName is the local part of an email address.
func defaultDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
