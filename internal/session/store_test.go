package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path, nil)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save(ctx, "tok-1"))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	// Saving replaces; exactly one token occupies the slot.
	require.NoError(t, store.Save(ctx, "tok-2"))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	// Clearing an empty slot is a no-op.
	require.NoError(t, store.Clear(ctx))
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "token")

	require.NoError(t, NewFileStore(path, nil).Save(ctx, "persisted"))

	// A fresh store on the same path sees the token.
	got, err := NewFileStore(path, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestFileStore_Permissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, NewFileStore(path, nil).Save(ctx, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SealedRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")

	sealer, err := NewSealer("passphrase")
	require.NoError(t, err)
	store := NewFileStore(path, sealer)

	require.NoError(t, store.Save(ctx, "sealed-token"))

	// The on-disk bytes are not the raw token.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sealed-token")

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sealed-token", got)
}

func TestFileStore_WrongPassphraseReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")

	sealer, err := NewSealer("right")
	require.NoError(t, err)
	require.NoError(t, NewFileStore(path, sealer).Save(ctx, "tok"))

	wrong, err := NewSealer("wrong")
	require.NoError(t, err)
	_, err = NewFileStore(path, wrong).Load(ctx)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestSealer_RejectsEmptyPassphrase(t *testing.T) {
	_, err := NewSealer("")
	assert.Error(t, err)
}

func TestMemStore_SlotSemantics(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save(ctx, "a"))
	require.NoError(t, store.Save(ctx, "b"))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoToken)
}
