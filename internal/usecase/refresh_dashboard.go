package usecase

import (
	"context"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// RefreshDashboard regenerates the dashboard without processing tasks.
type RefreshDashboard struct {
	store     *vault.Store
	dashboard domain.DashboardWriter
}

// NewRefreshDashboard creates a new RefreshDashboard use case.
func NewRefreshDashboard(store *vault.Store, dashboard domain.DashboardWriter) *RefreshDashboard {
	return &RefreshDashboard{store: store, dashboard: dashboard}
}

// Execute rewrites Dashboard.md from current directory listings.
func (uc *RefreshDashboard) Execute(_ context.Context) error {
	if err := requireInitialized(uc.store); err != nil {
		return err
	}
	return uc.dashboard.Refresh()
}
