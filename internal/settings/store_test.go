package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestTermsAccepted_DefaultsFalse(t *testing.T) {
	store := newTestStore(t)

	accepted, err := store.TermsAccepted(context.Background())

	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestSetTermsAccepted_Roundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTermsAccepted(ctx, true))
	accepted, err := store.TermsAccepted(ctx)
	require.NoError(t, err)
	assert.True(t, accepted)

	require.NoError(t, store.SetTermsAccepted(ctx, false))
	accepted, err = store.TermsAccepted(ctx)
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestClear_ReturnsToFirstRunState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTermsAccepted(ctx, true))
	require.NoError(t, store.Clear(ctx))

	accepted, err := store.TermsAccepted(ctx)
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetTermsAccepted(ctx, true))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	accepted, err := reopened.TermsAccepted(ctx)
	require.NoError(t, err)
	assert.True(t, accepted)
}
