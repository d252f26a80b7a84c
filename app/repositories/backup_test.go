package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := OpenSQLite(ctx, filepath.Join(dir, "blog.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Init(ctx))
	createPost(t, store, "Backed up")

	backupPath := filepath.Join(dir, "backup.db")
	require.NoError(t, store.Backup(ctx, backupPath))

	restored, err := OpenSQLite(ctx, backupPath)
	require.NoError(t, err)
	defer restored.Close()

	posts, err := restored.Posts().List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Backed up", posts[0].Title)
}

func TestBadgerBackup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := OpenBadger(filepath.Join(dir, "badger"), false)
	require.NoError(t, err)
	require.NoError(t, store.Init(ctx))
	createPost(t, store, "Backed up")

	backupPath := filepath.Join(dir, "backup.bak")
	require.NoError(t, store.Backup(ctx, backupPath))
	require.NoError(t, store.Close())

	restored, err := OpenBadger(filepath.Join(dir, "restored"), false)
	require.NoError(t, err)
	defer restored.Close()
	require.NoError(t, restored.Load(backupPath))

	posts, err := restored.Posts().List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Backed up", posts[0].Title)

	// Sequences are restored too, so new IDs do not collide.
	next := createPost(t, restored, "After restore")
	assert.Equal(t, 3, next.ID)
}
