package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_ReleaseDeletesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2026"), 0o755))
	path := filepath.Join(dir, "2026", "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("bytes"), 0o644))

	store := NewFSStore(dir)
	require.NoError(t, store.Release(context.Background(), "2026/doc.pdf"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFSStore_ReleaseMissingKeyIsFine(t *testing.T) {
	store := NewFSStore(t.TempDir())
	assert.NoError(t, store.Release(context.Background(), "never/existed.txt"))
}

func TestFSStore_RejectsEscapingKeys(t *testing.T) {
	store := NewFSStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Release(ctx, ""))
	assert.Error(t, store.Release(ctx, "../outside.txt"))
	assert.Error(t, store.Release(ctx, "a/../../outside.txt"))
	assert.Error(t, store.Release(ctx, "/etc/passwd"))
}

func TestNoopStore(t *testing.T) {
	assert.NoError(t, NewNoopStore().Release(context.Background(), "anything"))
}
