package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
	"github.com/runoshun/vaultpipe/internal/infra/watcher"
)

// WatchInbox runs the long-lived inbox watcher: new settled files are
// ingested and pushed through a full pipeline pass, deleted originals
// trigger rollback. It blocks until ctx is cancelled.
type WatchInbox struct {
	store    *vault.Store
	ingest   *IngestFile
	run      *RunPipeline
	rollback *RollbackTask
	logger   domain.Logger
	settle   domain.SettleConfig
}

// NewWatchInbox creates a new WatchInbox use case.
func NewWatchInbox(
	store *vault.Store,
	ingest *IngestFile,
	run *RunPipeline,
	rollback *RollbackTask,
	settle domain.SettleConfig,
	logger domain.Logger,
) *WatchInbox {
	return &WatchInbox{
		store:    store,
		ingest:   ingest,
		run:      run,
		rollback: rollback,
		settle:   settle,
		logger:   logger,
	}
}

// Execute watches the inbox until ctx is cancelled. Handler failures are
// logged by the watcher and never stop the loop.
func (uc *WatchInbox) Execute(ctx context.Context) error {
	if err := requireInitialized(uc.store); err != nil {
		return err
	}

	w := watcher.New(uc.store.Dirs().Inbox, uc.settle, watcher.Hooks{
		Created: uc.onCreated,
		Removed: uc.onRemoved,
	}, uc.logger)
	return w.Run(ctx)
}

func (uc *WatchInbox) onCreated(ctx context.Context, path string) error {
	if _, err := uc.ingest.Execute(ctx, IngestFileInput{Path: path}); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if _, err := uc.run.Execute(ctx); err != nil {
		return fmt.Errorf("pipeline pass: %w", err)
	}
	return nil
}

func (uc *WatchInbox) onRemoved(ctx context.Context, name string) error {
	_, err := uc.rollback.Execute(ctx, RollbackTaskInput{OriginalName: name})
	return err
}
