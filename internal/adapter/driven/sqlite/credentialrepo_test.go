package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/professionalaize/internal/domain/port/driven"
)

const apiKey = "AIzaSyTestKey0123456789abcdef"

func TestCredentialRepo_SetAndGet(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{name: "encrypted", key: testKey()},
		{name: "plaintext", key: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewCredentialRepo(setupTestDB(t), tt.key)
			ctx := context.Background()

			require.NoError(t, repo.Set(ctx, "geminiApiKey", apiKey))

			val, err := repo.Get(ctx, "geminiApiKey")
			require.NoError(t, err)
			assert.Equal(t, apiKey, val)
		})
	}
}

func TestCredentialRepo_GetMissing(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())

	val, err := repo.Get(context.Background(), "geminiApiKey")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestCredentialRepo_UpsertOverwrites(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "geminiApiKey", "old-value"))
	require.NoError(t, repo.Set(ctx, "geminiApiKey", "new-value"))

	val, err := repo.Get(ctx, "geminiApiKey")
	require.NoError(t, err)
	assert.Equal(t, "new-value", val)

	var count int
	require.NoError(t, repo.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCredentialRepo_EncryptsAtRest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "geminiApiKey", apiKey))

	var (
		stored    string
		encrypted bool
	)
	err := db.Reader.QueryRowContext(ctx, `SELECT value, encrypted FROM settings WHERE key = ?`, "geminiApiKey").
		Scan(&stored, &encrypted)
	require.NoError(t, err)
	assert.True(t, encrypted)
	assert.NotContains(t, stored, apiKey)
}

func TestCredentialRepo_PlaintextRowReadableAfterKeyAdded(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewCredentialRepo(db, nil).Set(ctx, "geminiApiKey", apiKey))

	val, err := NewCredentialRepo(db, testKey()).Get(ctx, "geminiApiKey")
	require.NoError(t, err)
	assert.Equal(t, apiKey, val)
}

func TestCredentialRepo_EncryptedRowWithoutKey(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewCredentialRepo(db, testKey()).Set(ctx, "geminiApiKey", apiKey))

	val, err := NewCredentialRepo(db, nil).Get(ctx, "geminiApiKey")
	require.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
	assert.Empty(t, val)
}

func TestCredentialRepo_WrongKey(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewCredentialRepo(db, testKey()).Set(ctx, "geminiApiKey", apiKey))

	other := []byte("fedcba9876543210fedcba9876543210")
	_, err := NewCredentialRepo(db, other).Get(ctx, "geminiApiKey")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt setting")
}

func TestCredentialRepo_Delete(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "geminiApiKey", apiKey))
	require.NoError(t, repo.Delete(ctx, "geminiApiKey"))

	val, err := repo.Get(ctx, "geminiApiKey")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	// A second delete of a now-missing key still succeeds.
	require.NoError(t, repo.Delete(ctx, "geminiApiKey"))
}

func TestCredentialRepo_KeysAreIndependent(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "geminiApiKey", apiKey))
	require.NoError(t, repo.Set(ctx, "other", "value"))
	require.NoError(t, repo.Delete(ctx, "other"))

	val, err := repo.Get(ctx, "geminiApiKey")
	require.NoError(t, err)
	assert.Equal(t, apiKey, val)
}

func TestNewDB_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db.Writer))
	// Migrations are idempotent across restarts.
	require.NoError(t, RunMigrations(db.Writer))
	assert.Equal(t, path, db.Path())

	repo := NewCredentialRepo(db, testKey())
	require.NoError(t, repo.Set(context.Background(), "geminiApiKey", apiKey))

	val, err := repo.Get(context.Background(), "geminiApiKey")
	require.NoError(t, err)
	assert.Equal(t, apiKey, val)
}
