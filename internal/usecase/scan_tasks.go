package usecase

import (
	"context"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// ScanTasksOutput lists the pending tasks, oldest first.
type ScanTasksOutput struct {
	Tasks []domain.Task
}

// ScanTasks is the read-only inspection use case over Needs_Action.
type ScanTasks struct {
	store *vault.Store
	metas domain.MetaReader
}

// NewScanTasks creates a new ScanTasks use case.
func NewScanTasks(store *vault.Store, metas domain.MetaReader) *ScanTasks {
	return &ScanTasks{store: store, metas: metas}
}

// Execute returns the current pending task descriptors without touching
// anything.
func (uc *ScanTasks) Execute(_ context.Context) (*ScanTasksOutput, error) {
	if err := requireInitialized(uc.store); err != nil {
		return nil, err
	}
	entries, err := uc.store.ListChecked(uc.store.Dirs().NeedsAction)
	if err != nil {
		return nil, err
	}
	return &ScanTasksOutput{Tasks: pendingTasks(entries, uc.metas)}, nil
}
