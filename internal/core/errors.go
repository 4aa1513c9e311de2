package core

import (
	"errors"
	"fmt"

	"operation-theta/internal/db"
)

// Error kinds surfaced by the core. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidInput          = errors.New("invalid input")
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)

// storageError classifies a repository failure: missing documents become
// ErrNotFound, everything else ErrRepositoryUnavailable.
func storageError(err error, what string) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrRepositoryUnavailable, what, err)
}
