package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nota/internal/storage"
)

func newTestRepo(t *testing.T) *Items {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s)
}

// Insert, toggle, delete: each mutation reaches every subscriber as a fresh
// snapshot.
func TestItemLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	ch, cancel := repo.Subscribe()
	defer cancel()

	id, err := repo.Insert(ctx, storage.Item{Title: "Buy milk", Description: "2%", Kind: true})
	require.NoError(t, err)
	snap := <-ch
	require.Len(t, snap, 1)
	assert.Equal(t, id, snap[0].ID)
	assert.False(t, snap[0].Finished)

	it := snap[0]
	it.Finished = true
	require.NoError(t, repo.Update(ctx, it))
	snap = <-ch
	require.Len(t, snap, 1)
	assert.Equal(t, id, snap[0].ID)
	assert.True(t, snap[0].Finished)

	require.NoError(t, repo.Delete(ctx, id))
	snap = <-ch
	assert.Empty(t, snap)
}

func TestGetByIDPassThrough(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id, err := repo.Insert(ctx, storage.Item{Title: "t", Description: "d", PhotoURIs: []string{"p1"}})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, []string{"p1"}, got.PhotoURIs)

	_, err = repo.GetByID(ctx, id+1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
