package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// IngestFileInput contains the parameters for ingesting an inbox file.
type IngestFileInput struct {
	Path string // absolute path of the inbox file
}

// IngestFileOutput describes the artifacts ingestion produced.
type IngestFileOutput struct {
	TaskName string // derived working-copy name in Needs_Action
	TaskPath string
	MetaName string // paired metadata note name
}

// IngestFile copies an inbox file into Needs_Action under a
// timestamp-prefixed name and writes its metadata note. The original
// inbox file is never touched; it remains the source of truth for the
// task's existence.
type IngestFile struct {
	store  *vault.Store
	mover  domain.Mover
	metas  domain.MetaWriter
	clock  domain.Clock
	logger domain.Logger
}

// NewIngestFile creates a new IngestFile use case.
func NewIngestFile(
	store *vault.Store,
	mover domain.Mover,
	metas domain.MetaWriter,
	clock domain.Clock,
	logger domain.Logger,
) *IngestFile {
	return &IngestFile{store: store, mover: mover, metas: metas, clock: clock, logger: logger}
}

// Execute ingests one file into the pipeline.
func (uc *IngestFile) Execute(_ context.Context, in IngestFileInput) (*IngestFileOutput, error) {
	name := filepath.Base(in.Path)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, domain.ErrEmptyFilename
	}
	if err := requireInitialized(uc.store); err != nil {
		return nil, err
	}

	info, err := os.Stat(in.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceMissing, in.Path)
	}

	now := uc.clock.Now()
	dirs := uc.store.Dirs()

	destPath, err := uc.mover.Copy(in.Path, dirs.NeedsAction, domain.DerivedTaskName(now, name))
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", name, err)
	}
	destName := filepath.Base(destPath)

	note, err := uc.metas.Note(in.Path, destName, info.Size(), now)
	if err != nil {
		return nil, err
	}
	metaName := domain.MetaNoteName(destName)
	if !uc.store.Write(filepath.Join(dirs.NeedsAction, metaName), note, false) {
		return nil, fmt.Errorf("write metadata note %s", metaName)
	}

	uc.logger.Info("ingest", fmt.Sprintf("%s -> %s", name, destName))
	return &IngestFileOutput{
		TaskName: destName,
		TaskPath: destPath,
		MetaName: metaName,
	}, nil
}
