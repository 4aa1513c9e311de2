// Package auth turns bearer tokens into verified identities.
package auth

import (
	"context"
	"errors"
	"fmt"

	firebaseauth "firebase.google.com/go/v4/auth"

	"operation-theta/internal/models"
)

var (
	// ErrInvalidToken is returned for tokens that fail verification.
	ErrInvalidToken = errors.New("invalid or expired authentication token")
	// ErrMissingEmail is returned for valid tokens that carry no email claim.
	ErrMissingEmail = errors.New("token has no email claim")
)

// IdentityVerifier verifies an opaque bearer token.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// tokenVerifier is the subset of *firebaseauth.Client used here.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client tokenVerifier
}

// NewFirebaseVerifier wraps a Firebase Auth client.
func NewFirebaseVerifier(client *firebaseauth.Client) (*FirebaseVerifier, error) {
	if client == nil {
		return nil, errors.New("firebase auth client is not initialized")
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the token signature and expiry and extracts the identity claims.
// Tokens without an email are rejected since the email keys the completion ledger.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrInvalidToken
	}
	verified, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return identityFromToken(verified)
}

func identityFromToken(token *firebaseauth.Token) (models.Identity, error) {
	identity := models.Identity{
		UID:         token.UID,
		Email:       stringClaim(token.Claims, "email"),
		DisplayName: stringClaim(token.Claims, "name"),
		PhotoURL:    stringClaim(token.Claims, "picture"),
	}
	if identity.Email == "" {
		return models.Identity{}, ErrMissingEmail
	}
	return identity, nil
}

func stringClaim(claims map[string]interface{}, name string) string {
	if v, ok := claims[name].(string); ok {
		return v
	}
	return ""
}
