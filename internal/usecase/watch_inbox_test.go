package usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/logging"
)

func newWatchInbox(f *fixture) *WatchInbox {
	settle := domain.SettleConfig{Timeout: 500 * time.Millisecond, Interval: 20 * time.Millisecond}
	return NewWatchInbox(f.store, f.ingest, f.run, f.rollback, settle, logging.Discard())
}

func TestWatchInbox_Execute_IngestsAndRollsBack(t *testing.T) {
	f := newFixture(t, false)
	uc := newWatchInbox(f)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- uc.Execute(ctx) }()

	// Let the watcher register before the first drop.
	time.Sleep(100 * time.Millisecond)
	src := f.dropInbox(t, "quarterly_report.txt", "numbers")

	require.Eventually(t, func() bool {
		return len(f.names(f.dirs.Done)) == 2
	}, 10*time.Second, 50*time.Millisecond, "create event must drive a full pipeline pass")

	require.NoError(t, os.Remove(src))
	require.Eventually(t, func() bool {
		return len(f.names(f.dirs.Done)) == 0 && len(f.names(f.dirs.Plans)) == 0
	}, 10*time.Second, 50*time.Millisecond, "delete event must roll the task back")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatchInbox_Execute_NotInitialized(t *testing.T) {
	f := newFixtureWithoutLayout(t)
	err := newWatchInbox(f).Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
