package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/meta"
)

func TestScanTasks_Execute_OrderedOldestFirst(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	for _, name := range []string{"first.txt", "second.txt"} {
		src := f.dropInbox(t, name, "x")
		_, err := f.ingest.Execute(ctx, IngestFileInput{Path: src})
		require.NoError(t, err)
	}

	uc := NewScanTasks(f.store, meta.NewReader())
	out, err := uc.Execute(ctx)
	require.NoError(t, err)

	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "first.txt", out.Tasks[0].SourceFile)
	assert.Equal(t, "second.txt", out.Tasks[1].SourceFile)
	assert.True(t, out.Tasks[0].HasMeta())
	assert.Equal(t, "first.txt", out.Tasks[0].Original())
}

func TestScanTasks_Execute_IsReadOnly(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	src := f.dropInbox(t, "a.txt", "x")
	_, err := f.ingest.Execute(ctx, IngestFileInput{Path: src})
	require.NoError(t, err)

	before := treeSnapshot(t, f.dirs.Root)
	_, err = NewScanTasks(f.store, meta.NewReader()).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, treeSnapshot(t, f.dirs.Root))
}

func TestScanTasks_Execute_NotInitialized(t *testing.T) {
	f := newFixtureWithoutLayout(t)
	_, err := NewScanTasks(f.store, meta.NewReader()).Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
