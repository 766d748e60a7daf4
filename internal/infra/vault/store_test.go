package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/logging"
)

func newTestStore(t *testing.T, dryRun bool) *Store {
	t.Helper()
	dirs := domain.NewDirs(t.TempDir())
	store := New(dirs, dryRun, logging.Discard())
	require.NoError(t, store.EnsureLayout())
	return store
}

func TestEnsureLayout(t *testing.T) {
	store := newTestStore(t, false)
	for _, dir := range store.Dirs().All() {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestReadMissingFile(t *testing.T) {
	store := newTestStore(t, false)
	content, ok := store.Read(filepath.Join(store.Dirs().Inbox, "nope.txt"))
	assert.False(t, ok)
	assert.Empty(t, content)
}

func TestWriteAndRead(t *testing.T) {
	store := newTestStore(t, false)
	path := filepath.Join(store.Dirs().Plans, "p.md")

	assert.True(t, store.Write(path, "plan body", false))

	content, ok := store.Read(path)
	require.True(t, ok)
	assert.Equal(t, "plan body", content)
}

func TestWriteRefusesExistingWithoutOverwrite(t *testing.T) {
	store := newTestStore(t, false)
	path := filepath.Join(store.Dirs().Plans, "p.md")

	require.True(t, store.Write(path, "first", false))
	assert.False(t, store.Write(path, "second", false))
	assert.True(t, store.Write(path, "second", true))

	content, _ := store.Read(path)
	assert.Equal(t, "second", content)
}

func TestListOrdersByModTime(t *testing.T) {
	store := newTestStore(t, false)
	dir := store.Dirs().NeedsAction

	older := filepath.Join(dir, "older.txt")
	newer := filepath.Join(dir, "newer.txt")
	require.NoError(t, os.WriteFile(older, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("bb"), 0o644))

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, base, base))
	require.NoError(t, os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)))

	entries := store.List(dir)
	require.Len(t, entries, 2)
	assert.Equal(t, "older.txt", entries[0].Name)
	assert.Equal(t, "newer.txt", entries[1].Name)
	assert.Equal(t, int64(2), entries[1].Size)
}

func TestListMissingDirIsEmpty(t *testing.T) {
	store := newTestStore(t, false)
	assert.Empty(t, store.List(filepath.Join(store.Dirs().Root, "no_such_dir")))
}

func TestListExt(t *testing.T) {
	store := newTestStore(t, false)
	dir := store.Dirs().Plans
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))

	entries := store.ListExt(dir, ".md")
	require.Len(t, entries, 1)
	assert.Equal(t, "a.md", entries[0].Name)
}

func TestDryRunWriteTouchesNothing(t *testing.T) {
	store := newTestStore(t, true)
	path := filepath.Join(store.Dirs().Plans, "p.md")

	assert.True(t, store.Write(path, "plan body", false))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDryRunRemoveTouchesNothing(t *testing.T) {
	store := newTestStore(t, true)
	path := filepath.Join(store.Dirs().Done, "d.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, store.Remove(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t, false)
	path := filepath.Join(store.Dirs().Done, "d.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, store.Remove(path))
	assert.False(t, store.Remove(path)) // second removal finds nothing
}

func TestListCheckedMissingDir(t *testing.T) {
	store := newTestStore(t, false)
	entries, err := store.ListChecked(filepath.Join(store.Dirs().Root, "gone"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
