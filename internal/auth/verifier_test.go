package auth

import (
	"context"
	"errors"
	"testing"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenVerifier struct {
	token *firebaseauth.Token
	err   error
}

func (s stubTokenVerifier) VerifyIDToken(context.Context, string) (*firebaseauth.Token, error) {
	return s.token, s.err
}

func TestFirebaseVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts claims", func(t *testing.T) {
		v := &FirebaseVerifier{client: stubTokenVerifier{token: &firebaseauth.Token{
			UID: "uid-1",
			Claims: map[string]interface{}{
				"email":   "agent@ktp.org",
				"name":    "Agent",
				"picture": "https://img/agent.png",
			},
		}}}

		identity, err := v.Verify(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", identity.UID)
		assert.Equal(t, "agent@ktp.org", identity.Email)
		assert.Equal(t, "Agent", identity.DisplayName)
		assert.Equal(t, "https://img/agent.png", identity.PhotoURL)
	})

	t.Run("rejects tokens without email", func(t *testing.T) {
		v := &FirebaseVerifier{client: stubTokenVerifier{token: &firebaseauth.Token{
			UID:    "uid-1",
			Claims: map[string]interface{}{"name": "Anon"},
		}}}

		_, err := v.Verify(ctx, "token")
		assert.ErrorIs(t, err, ErrMissingEmail)
	})

	t.Run("wraps verification failures", func(t *testing.T) {
		v := &FirebaseVerifier{client: stubTokenVerifier{err: errors.New("token expired")}}

		_, err := v.Verify(ctx, "token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Contains(t, err.Error(), "token expired")
	})

	t.Run("empty token", func(t *testing.T) {
		v := &FirebaseVerifier{client: stubTokenVerifier{}}

		_, err := v.Verify(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewFirebaseVerifier_NilClient(t *testing.T) {
	_, err := NewFirebaseVerifier(nil)
	assert.Error(t, err)
}
