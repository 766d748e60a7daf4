package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// InitVaultOutput describes what initialization created.
type InitVaultOutput struct {
	Root          string
	ConfigWritten bool // false when vault.toml already existed
}

// InitVault creates the vault directory layout, seeds the default
// configuration, and renders the first dashboard. Running it on an
// existing vault is safe; nothing is overwritten.
type InitVault struct {
	store     *vault.Store
	dashboard domain.DashboardWriter
	logger    domain.Logger
	config    string // default vault.toml content
}

// NewInitVault creates a new InitVault use case.
func NewInitVault(store *vault.Store, dashboard domain.DashboardWriter, defaultConfig string, logger domain.Logger) *InitVault {
	return &InitVault{store: store, dashboard: dashboard, config: defaultConfig, logger: logger}
}

// Execute initializes the vault.
func (uc *InitVault) Execute(_ context.Context) (*InitVaultOutput, error) {
	if err := uc.store.EnsureLayout(); err != nil {
		return nil, err
	}

	dirs := uc.store.Dirs()
	configWritten := uc.store.Write(dirs.ConfigPath(), uc.config, false)

	if err := uc.dashboard.Refresh(); err != nil {
		return nil, fmt.Errorf("render initial dashboard: %w", err)
	}

	uc.logger.Info("init", fmt.Sprintf("vault ready at %s", dirs.Root))
	return &InitVaultOutput{Root: dirs.Root, ConfigWritten: configWritten}, nil
}
