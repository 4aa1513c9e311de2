package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"operation-theta/internal/models"
)

const activityCollection = "activity"

// firestoreActivityRepository implements ActivityRepository using Firestore.
type firestoreActivityRepository struct {
	client *firestore.Client
}

// NewFirestoreActivityRepository creates a new instance of firestoreActivityRepository.
func NewFirestoreActivityRepository(client *firestore.Client, logger *zap.Logger) ActivityRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for ActivityRepository.")
	}
	return &firestoreActivityRepository{client: client}
}

// Create appends an entry with an auto-generated ID. The timestamp is set server side.
func (r *firestoreActivityRepository) Create(ctx context.Context, entry models.ActivityEntry) error {
	docRef := r.client.Collection(activityCollection).NewDoc()
	entry.ID = docRef.ID
	if _, err := docRef.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}
	return nil
}
