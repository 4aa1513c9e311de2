package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"operation-theta/internal/models"
	"operation-theta/internal/puzzle"
)

const (
	missionsCollection = "missions"
	completedByField   = "completedBy"
)

// missionDocument is the stored shape of a mission. The answer is a string or a
// list depending on the puzzle type and is turned into a typed key on read.
type missionDocument struct {
	Title       string        `firestore:"title"`
	Category    string        `firestore:"category"`
	Description string        `firestore:"description"`
	Hint        string        `firestore:"hint,omitempty"`
	Difficulty  string        `firestore:"difficulty,omitempty"`
	TimeLimit   string        `firestore:"timeLimit,omitempty"`
	PuzzleType  string        `firestore:"puzzleType"`
	Question    string        `firestore:"question"`
	Answer      interface{}   `firestore:"answer"`
	Options     []string      `firestore:"options,omitempty"`
	Pairs       []models.Pair `firestore:"pairs,omitempty"`
	XP          int64         `firestore:"xp"`
	CompletedBy []string      `firestore:"completedBy"`
}

// firestoreMissionRepository implements MissionRepository using Firestore.
type firestoreMissionRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreMissionRepository creates a new instance of firestoreMissionRepository.
func NewFirestoreMissionRepository(client *firestore.Client, logger *zap.Logger) MissionRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for MissionRepository.")
	}
	return &firestoreMissionRepository{client: client, logger: logger}
}

// List returns every mission. The read is all-or-nothing: any iteration or
// decoding failure fails the whole call.
func (r *firestoreMissionRepository) List(ctx context.Context) ([]*models.Mission, error) {
	iter := r.client.Collection(missionsCollection).Documents(ctx)
	defer iter.Stop()

	missions := make([]*models.Mission, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate missions: %w", err)
		}

		mission, err := r.decode(docSnap)
		if err != nil {
			return nil, err
		}
		missions = append(missions, mission)
	}
	return missions, nil
}

// GetByID retrieves a single mission by document ID.
func (r *firestoreMissionRepository) GetByID(ctx context.Context, missionID string) (*models.Mission, error) {
	if missionID == "" {
		return nil, errors.New("missionID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(missionsCollection).Doc(missionID).Get(ctx)
	if err != nil {
		if missingDocument(err) {
			return nil, fmt.Errorf("mission with ID '%s' not found: %w", missionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get mission with ID '%s': %w", missionID, err)
	}
	return r.decode(docSnap)
}

// AddCompletion records identifier in the mission's ledger inside a transaction.
// The write is an ArrayUnion, so concurrent completions by other users are never
// overwritten, and Firestore re-runs the function when the document changed
// underneath it.
func (r *firestoreMissionRepository) AddCompletion(ctx context.Context, missionID, identifier string) (bool, error) {
	if missionID == "" || identifier == "" {
		return false, errors.New("missionID and identifier are required for AddCompletion")
	}
	docRef := r.client.Collection(missionsCollection).Doc(missionID)

	var alreadyCompleted bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// The function may run more than once.
		alreadyCompleted = false

		docSnap, err := tx.Get(docRef)
		if err != nil {
			if missingDocument(err) {
				return fmt.Errorf("mission with ID '%s' not found: %w", missionID, ErrNotFound)
			}
			return fmt.Errorf("failed to read mission '%s': %w", missionID, err)
		}

		var doc missionDocument
		if err := docSnap.DataTo(&doc); err != nil {
			return fmt.Errorf("failed to decode mission '%s': %w", missionID, err)
		}
		// An unusable answer key does not affect the ledger.
		mission, _ := doc.toModel(missionID)
		if mission.CompletedByUser(identifier) {
			alreadyCompleted = true
			return nil
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: completedByField, Value: firestore.ArrayUnion(identifier)},
		})
	})
	if err != nil {
		return false, fmt.Errorf("failed to record completion of mission '%s': %w", missionID, err)
	}
	return alreadyCompleted, nil
}

// Upsert writes the mission definition fields with MergeAll so completedBy is
// never replaced.
func (r *firestoreMissionRepository) Upsert(ctx context.Context, mission *models.Mission) error {
	if mission == nil || mission.ID == "" {
		return errors.New("mission ID cannot be empty for Upsert operation")
	}

	_, err := r.client.Collection(missionsCollection).Doc(mission.ID).Set(ctx, upsertFields(mission), firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to upsert mission with ID '%s': %w", mission.ID, err)
	}
	return nil
}

// upsertFields is the merge payload for a mission definition. Optional fields the
// definition no longer has are deleted, so a mission that changed puzzle type
// does not keep stale options or pairs.
func upsertFields(mission *models.Mission) map[string]interface{} {
	fields := map[string]interface{}{
		"title":       mission.Title,
		"category":    mission.Category,
		"description": mission.Description,
		"hint":        mission.Hint,
		"difficulty":  mission.Difficulty,
		"timeLimit":   mission.TimeLimit,
		"puzzleType":  string(mission.PuzzleType),
		"question":    mission.Question,
		"answer":      mission.AnswerKey.StoredValue(),
		"xp":          int64(mission.XP),
		"options":     firestore.Delete,
		"pairs":       firestore.Delete,
	}
	if len(mission.Options) > 0 {
		fields["options"] = mission.Options
	}
	if len(mission.Pairs) > 0 {
		fields["pairs"] = mission.Pairs
	}
	return fields
}

func (r *firestoreMissionRepository) decode(docSnap *firestore.DocumentSnapshot) (*models.Mission, error) {
	var doc missionDocument
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode mission data for ID '%s': %w", docSnap.Ref.ID, err)
	}
	mission, err := doc.toModel(docSnap.Ref.ID)
	if err != nil {
		// A broken answer key only makes the mission uncompletable; its ledger
		// still counts towards the leaderboard.
		r.logger.Warn("Mission has an unusable answer key",
			zap.String("missionID", docSnap.Ref.ID), zap.Error(err))
	}
	return mission, nil
}

// toModel converts the stored document into a mission. When the answer cannot be
// interpreted the mission is still returned, with an empty key, alongside the error.
func (d *missionDocument) toModel(id string) (*models.Mission, error) {
	mission := &models.Mission{
		ID:          id,
		Title:       d.Title,
		Category:    d.Category,
		Description: d.Description,
		Hint:        d.Hint,
		Difficulty:  d.Difficulty,
		TimeLimit:   d.TimeLimit,
		PuzzleType:  puzzle.Type(d.PuzzleType),
		Question:    d.Question,
		Options:     d.Options,
		Pairs:       d.Pairs,
		XP:          int(d.XP),
		CompletedBy: d.CompletedBy,
	}
	if mission.CompletedBy == nil {
		mission.CompletedBy = []string{}
	}
	if mission.XP < 0 {
		mission.XP = 0
	}

	key, err := puzzle.ParseAnswerKey(mission.PuzzleType, d.Answer)
	if err != nil {
		mission.AnswerKey = puzzle.AnswerKey{Type: mission.PuzzleType}
		return mission, err
	}
	mission.AnswerKey = key
	return mission, nil
}

// missingDocument reports whether err means the addressed mission cannot exist.
// Firestore answers InvalidArgument for IDs it refuses, such as "__x__"; such a
// mission is simply absent, not a store outage.
func missingDocument(err error) bool {
	switch status.Code(err) {
	case codes.NotFound, codes.InvalidArgument:
		return true
	}
	return false
}
