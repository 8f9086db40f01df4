// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"
)

// ErrEncryptionKeyNotSet is returned when a stored value is encrypted but the
// adapter was constructed without PROFESSIONALAIZE_SECRET_KEY.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set PROFESSIONALAIZE_SECRET_KEY")

// CredentialStore defines the driven port for the durable key-value store that
// holds the API key. It is shared by every surface of the application, so
// writes are whole-value overwrites and readers see either the old or the new
// value, never a partial one.
type CredentialStore interface {
	// Get returns the value stored under key.
	// Returns ("", nil) if nothing is stored under key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
