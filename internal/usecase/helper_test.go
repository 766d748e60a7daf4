package usecase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/catalog"
	"github.com/runoshun/vaultpipe/internal/infra/classify"
	"github.com/runoshun/vaultpipe/internal/infra/dashboard"
	"github.com/runoshun/vaultpipe/internal/infra/logging"
	"github.com/runoshun/vaultpipe/internal/infra/meta"
	"github.com/runoshun/vaultpipe/internal/infra/mover"
	"github.com/runoshun/vaultpipe/internal/infra/plan"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// stubClock advances one second per reading so every derived artifact in
// a test gets a distinct timestamp prefix.
type stubClock struct {
	now time.Time
}

func newStubClock() *stubClock {
	return &stubClock{now: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)}
}

func (c *stubClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

// fixture wires the full pipeline over a temp vault with real
// infrastructure; the system under test is filesystem state.
type fixture struct {
	dirs     domain.Dirs
	store    *vault.Store
	catalog  *catalog.Catalog
	cfg      *domain.Config
	clock    *stubClock
	mover    domain.Mover
	dash     domain.DashboardWriter
	reader   domain.MetaReader
	logger   domain.Logger
	ingest   *IngestFile
	run      *RunPipeline
	rollback *RollbackTask
}

// runWith builds a RunPipeline over the fixture's vault with a custom
// classifier implementation.
func (f *fixture) runWith(classifier domain.Classifier) *RunPipeline {
	return NewRunPipeline(f.store, classifier, plan.New(), f.mover, f.catalog,
		f.dash, nil, f.reader, f.cfg, f.clock, f.logger)
}

func newFixture(t *testing.T, dryRun bool) *fixture {
	t.Helper()

	cfg := domain.NewDefaultConfig()
	cfg.DryRun = dryRun

	logger := logging.Discard()
	dirs := domain.NewDirs(t.TempDir())
	store := vault.New(dirs, dryRun, logger)
	require.NoError(t, store.EnsureLayout())

	clock := newStubClock()
	mv := mover.New(dryRun, logger)
	cat := catalog.New(dirs.CatalogPath(), dryRun, logger)
	dash := dashboard.New(store, cfg, clock, logger)
	reader := meta.NewReader()

	f := &fixture{
		dirs:    dirs,
		store:   store,
		catalog: cat,
		cfg:     cfg,
		clock:   clock,
		mover:   mv,
		dash:    dash,
		reader:  reader,
		logger:  logger,
	}
	f.ingest = NewIngestFile(store, mv, meta.NewWriter(), clock, logger)
	f.run = NewRunPipeline(store, classify.New(), plan.New(), mv, cat, dash, nil, reader, cfg, clock, logger)
	f.rollback = NewRollbackTask(store, cat, reader, dash, logger)
	return f
}

// newFixtureWithoutLayout builds the same wiring over a root whose vault
// directories were never created.
func newFixtureWithoutLayout(t *testing.T) *fixture {
	t.Helper()

	cfg := domain.NewDefaultConfig()
	logger := logging.Discard()
	dirs := domain.NewDirs(t.TempDir())
	store := vault.New(dirs, false, logger)

	clock := newStubClock()
	mv := mover.New(false, logger)
	cat := catalog.New(dirs.CatalogPath(), false, logger)
	dash := dashboard.New(store, cfg, clock, logger)
	reader := meta.NewReader()

	f := &fixture{
		dirs:    dirs,
		store:   store,
		catalog: cat,
		cfg:     cfg,
		clock:   clock,
		mover:   mv,
		dash:    dash,
		reader:  reader,
		logger:  logger,
	}
	f.ingest = NewIngestFile(store, mv, meta.NewWriter(), clock, logger)
	f.run = NewRunPipeline(store, classify.New(), plan.New(), mv, cat, dash, nil, reader, cfg, clock, logger)
	f.rollback = NewRollbackTask(store, cat, reader, dash, logger)
	return f
}

// dropInbox writes a file into the vault inbox and returns its path.
func (f *fixture) dropInbox(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dirs.Inbox, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// names lists the filenames currently in a vault directory.
func (f *fixture) names(dir string) []string {
	var out []string
	for _, e := range f.store.List(dir) {
		out = append(out, e.Name)
	}
	return out
}
