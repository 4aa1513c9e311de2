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
)

const usersCollection = "users"

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client, logger *zap.Logger) UserRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client, logger: logger}
}

// Create adds a new user document keyed by the Firebase Auth UID.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with ID '%s': %w", user.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user with ID '%s': %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user document by its ID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = docSnap.Ref.ID
	return &user, nil
}

// List returns every user profile. Like the mission listing it is all-or-nothing.
func (r *firestoreUserRepository) List(ctx context.Context) ([]*models.User, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	users := make([]*models.User, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}

		var user models.User
		if err := docSnap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", docSnap.Ref.ID, err)
		}
		user.ID = docSnap.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

// Update writes the display fields of an existing user. Only the profile fields
// are touched; the document must already exist.
func (r *firestoreUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Update(ctx, []firestore.Update{
		{Path: "email", Value: user.Email},
		{Path: "displayName", Value: user.DisplayName},
		{Path: "photoURL", Value: user.PhotoURL},
		{Path: "updatedAt", Value: user.UpdatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with ID '%s' not found for update: %w", user.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update user with ID '%s': %w", user.ID, err)
	}
	return nil
}
