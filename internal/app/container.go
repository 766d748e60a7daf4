// Package app provides the dependency injection container for the
// application.
package app

import (
	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/catalog"
	"github.com/runoshun/vaultpipe/internal/infra/classify"
	"github.com/runoshun/vaultpipe/internal/infra/config"
	"github.com/runoshun/vaultpipe/internal/infra/dashboard"
	"github.com/runoshun/vaultpipe/internal/infra/logging"
	"github.com/runoshun/vaultpipe/internal/infra/meta"
	"github.com/runoshun/vaultpipe/internal/infra/mover"
	"github.com/runoshun/vaultpipe/internal/infra/plan"
	"github.com/runoshun/vaultpipe/internal/infra/snapshot"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
	"github.com/runoshun/vaultpipe/internal/usecase"
)

// Options tune container construction from the CLI surface.
type Options struct {
	// DryRun forces dry-run mode regardless of configuration.
	DryRun bool
}

// Container holds all port implementations and provides factory methods
// for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Mover      domain.Mover
	Catalog    domain.Catalog
	Dashboard  domain.DashboardWriter
	Snapshots  domain.Snapshotter
	Classifier domain.Classifier
	Plans      domain.PlanRenderer
	MetaReader domain.MetaReader
	MetaWriter domain.MetaWriter
	Clock      domain.Clock

	// Pointer fields
	Store  *vault.Store
	Logger *logging.Logger
	Config *domain.Config

	// Vault layout
	Dirs domain.Dirs
}

// New creates a Container rooted at the given vault directory.
// Configuration is read from <root>/vault.toml when present.
func New(root string, opts Options) (*Container, error) {
	dirs := domain.NewDirs(root)

	cfg, err := config.NewLoader(dirs.ConfigPath()).Load()
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		cfg.DryRun = true
	}

	logger := logging.New(dirs.LogPath(), logging.ParseLevel(cfg.Log.Level))
	clock := domain.RealClock{}

	store := vault.New(dirs, cfg.DryRun, logger)
	mv := mover.New(cfg.DryRun, logger)
	cat := catalog.New(dirs.CatalogPath(), cfg.DryRun, logger)
	dash := dashboard.New(store, cfg, clock, logger)
	snap := snapshot.New(dirs.Root, cfg.DryRun, clock, logger)

	return &Container{
		Mover:      mv,
		Catalog:    cat,
		Dashboard:  dash,
		Snapshots:  snap,
		Classifier: classify.New(),
		Plans:      plan.New(),
		MetaReader: meta.NewReader(),
		MetaWriter: meta.NewWriter(),
		Clock:      clock,
		Store:      store,
		Logger:     logger,
		Config:     cfg,
		Dirs:       dirs,
	}, nil
}

// Close releases container-held resources.
func (c *Container) Close() error {
	return c.Logger.Close()
}

// UseCase factory methods

// InitVaultUseCase returns a new InitVault use case.
func (c *Container) InitVaultUseCase() *usecase.InitVault {
	return usecase.NewInitVault(c.Store, c.Dashboard, config.DefaultFileContent, c.Logger)
}

// IngestFileUseCase returns a new IngestFile use case.
func (c *Container) IngestFileUseCase() *usecase.IngestFile {
	return usecase.NewIngestFile(c.Store, c.Mover, c.MetaWriter, c.Clock, c.Logger)
}

// RunPipelineUseCase returns a new RunPipeline use case.
func (c *Container) RunPipelineUseCase() *usecase.RunPipeline {
	return usecase.NewRunPipeline(c.Store, c.Classifier, c.Plans, c.Mover,
		c.Catalog, c.Dashboard, c.Snapshots, c.MetaReader, c.Config, c.Clock, c.Logger)
}

// ScanTasksUseCase returns a new ScanTasks use case.
func (c *Container) ScanTasksUseCase() *usecase.ScanTasks {
	return usecase.NewScanTasks(c.Store, c.MetaReader)
}

// RefreshDashboardUseCase returns a new RefreshDashboard use case.
func (c *Container) RefreshDashboardUseCase() *usecase.RefreshDashboard {
	return usecase.NewRefreshDashboard(c.Store, c.Dashboard)
}

// RollbackTaskUseCase returns a new RollbackTask use case.
func (c *Container) RollbackTaskUseCase() *usecase.RollbackTask {
	return usecase.NewRollbackTask(c.Store, c.Catalog, c.MetaReader, c.Dashboard, c.Logger)
}

// WatchInboxUseCase returns a new WatchInbox use case.
func (c *Container) WatchInboxUseCase() *usecase.WatchInbox {
	return usecase.NewWatchInbox(c.Store, c.IngestFileUseCase(),
		c.RunPipelineUseCase(), c.RollbackTaskUseCase(), c.Config.Settle, c.Logger)
}

// SnapshotVaultUseCase returns a new SnapshotVault use case.
func (c *Container) SnapshotVaultUseCase() *usecase.SnapshotVault {
	return usecase.NewSnapshotVault(c.Store, c.Snapshots, c.Clock)
}
