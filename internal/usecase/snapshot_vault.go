package usecase

import (
	"context"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// SnapshotVaultOutput carries the commit message used.
type SnapshotVaultOutput struct {
	Message string
}

// SnapshotVault records the whole vault tree into version control.
type SnapshotVault struct {
	store     *vault.Store
	snapshots domain.Snapshotter
	clock     domain.Clock
}

// NewSnapshotVault creates a new SnapshotVault use case.
func NewSnapshotVault(store *vault.Store, snapshots domain.Snapshotter, clock domain.Clock) *SnapshotVault {
	return &SnapshotVault{store: store, snapshots: snapshots, clock: clock}
}

// Execute commits the current vault state. A clean tree is a successful
// no-op.
func (uc *SnapshotVault) Execute(_ context.Context) (*SnapshotVaultOutput, error) {
	if err := requireInitialized(uc.store); err != nil {
		return nil, err
	}
	msg := "vault snapshot " + uc.clock.Now().Format("2006-01-02 15:04:05")
	if err := uc.snapshots.Commit(msg); err != nil {
		return nil, err
	}
	return &SnapshotVaultOutput{Message: msg}, nil
}
