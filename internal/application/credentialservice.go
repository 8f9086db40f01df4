package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
	"github.com/ericfisherdev/professionalaize/internal/domain/port/driven"
)

// CredentialStatus is the display view of the stored key.
type CredentialStatus struct {
	Configured bool
	Masked     string
}

// CredentialService guards the single persisted API key. It validates keys
// before they are written and turns read failures into "absent" so a broken
// store never blocks the relay with an unexpected error.
type CredentialService struct {
	store  driven.CredentialStore
	logger *slog.Logger
}

// NewCredentialService creates a CredentialService over the given store.
func NewCredentialService(store driven.CredentialStore, logger *slog.Logger) *CredentialService {
	return &CredentialService{
		store:  store,
		logger: logger,
	}
}

// Get returns the stored credential. The second result is false when no key
// is stored or the store read failed; read failures are logged, not returned.
func (s *CredentialService) Get(ctx context.Context) (model.Credential, bool) {
	value, err := s.store.Get(ctx, model.CredentialStorageKey)
	if err != nil {
		s.logger.Error("failed to read credential, treating as absent", "error", err)
		return "", false
	}
	if value == "" {
		return "", false
	}
	return model.Credential(value), true
}

// Set validates raw and persists it, replacing any previous key. Invalid
// input returns a *model.ValidationError and the store is not touched.
func (s *CredentialService) Set(ctx context.Context, raw string) error {
	cred, err := model.ValidateAPIKey(raw)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, model.CredentialStorageKey, cred.Secret()); err != nil {
		return &model.StoreError{Op: "set", Err: err}
	}

	s.logger.Info("credential saved", "key", cred.Masked())
	return nil
}

// Remove deletes the stored key. Removing when nothing is stored succeeds.
func (s *CredentialService) Remove(ctx context.Context) error {
	if err := s.store.Delete(ctx, model.CredentialStorageKey); err != nil {
		return &model.StoreError{Op: "remove", Err: err}
	}

	s.logger.Info("credential removed")
	return nil
}

// Status reports whether a key is configured along with its masked form.
func (s *CredentialService) Status(ctx context.Context) CredentialStatus {
	cred, ok := s.Get(ctx)
	if !ok {
		return CredentialStatus{}
	}
	return CredentialStatus{Configured: true, Masked: cred.Masked()}
}
