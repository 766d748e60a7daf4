package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// RollbackTaskInput contains the parameters for rolling back a task.
type RollbackTaskInput struct {
	OriginalName string // original inbox filename, e.g. quarterly_report.txt
}

// RollbackTaskOutput reports what the rollback removed.
type RollbackTaskOutput struct {
	Report domain.RollbackReport
}

// RollbackTask removes every artifact derived from an original inbox
// file: the Needs_Action working copy and note, all plans, any
// Pending_Approval copies, any Done copies, and the matching audit-log
// lines. Identity is recovered from metadata notes first (source_file
// field) with filename matching as the fallback, so rollback works on
// filesystem state alone and is idempotent: a second call finds nothing
// and reports zero removals.
type RollbackTask struct {
	store     *vault.Store
	catalog   domain.Catalog
	metas     domain.MetaReader
	dashboard domain.DashboardWriter
	logger    domain.Logger
}

// NewRollbackTask creates a new RollbackTask use case.
func NewRollbackTask(
	store *vault.Store,
	catalog domain.Catalog,
	metas domain.MetaReader,
	dashboard domain.DashboardWriter,
	logger domain.Logger,
) *RollbackTask {
	return &RollbackTask{store: store, catalog: catalog, metas: metas, dashboard: dashboard, logger: logger}
}

// Execute rolls back every artifact for the given original filename.
func (uc *RollbackTask) Execute(_ context.Context, in RollbackTaskInput) (*RollbackTaskOutput, error) {
	name := filepath.Base(in.OriginalName)
	if name == "" || name == "." {
		return nil, domain.ErrEmptyFilename
	}
	if err := requireInitialized(uc.store); err != nil {
		return nil, err
	}

	dirs := uc.store.Dirs()
	derived := uc.collectDerivedNames(name)

	var report domain.RollbackReport
	for _, dir := range []string{dirs.NeedsAction, dirs.Plans, dirs.PendingApproval, dirs.Done} {
		for _, e := range uc.store.List(dir) {
			if !uc.belongsTo(e, name, derived) {
				continue
			}
			if uc.store.Remove(e.Path) {
				report.Removed = append(report.Removed, e.Path)
				uc.logger.Info("rollback", fmt.Sprintf("removed %s", e.Path))
			}
		}
	}

	removed, err := uc.catalog.RemoveFile(name)
	if err != nil {
		return nil, fmt.Errorf("compact catalog: %w", err)
	}
	report.CatalogEntriesRemoved = removed

	if err := uc.dashboard.Refresh(); err != nil {
		uc.logger.Error("rollback", fmt.Sprintf("dashboard refresh: %v", err))
	}

	uc.logger.Info("rollback", fmt.Sprintf(
		"%s: %d artifacts, %d catalog entries", name, len(report.Removed), removed))
	return &RollbackTaskOutput{Report: report}, nil
}

// collectDerivedNames gathers the working-copy names recorded in metadata
// notes whose source_file matches. Notes are the primary identity source;
// filename matching only backs them up.
func (uc *RollbackTask) collectDerivedNames(originalName string) map[string]struct{} {
	dirs := uc.store.Dirs()
	derived := make(map[string]struct{})
	for _, dir := range []string{dirs.NeedsAction, dirs.PendingApproval, dirs.Done} {
		for _, e := range uc.store.List(dir) {
			if !domain.IsMetaNote(e.Name) {
				continue
			}
			if uc.metas.SourceFile(e.Path) != originalName {
				continue
			}
			if dest := uc.metas.DestinationName(e.Path); dest != "" {
				derived[dest] = struct{}{}
			}
		}
	}
	return derived
}

// belongsTo decides whether a vault entry is a derived artifact of the
// original filename.
func (uc *RollbackTask) belongsTo(e vault.Entry, originalName string, derived map[string]struct{}) bool {
	switch {
	case domain.IsMetaNote(e.Name):
		if uc.metas.SourceFile(e.Path) == originalName {
			return true
		}
		return matchesDerivedMeta(e.Name, originalName)
	case domain.IsPlan(e.Name):
		if matchesPlan(e.Name, originalName) {
			return true
		}
		for d := range derived {
			stem := strings.TrimSuffix(d, filepath.Ext(d))
			if domain.StripTimestampPrefix(e.Name) == stem+domain.PlanSuffix {
				return true
			}
		}
		return false
	default:
		if _, ok := derived[e.Name]; ok {
			return true
		}
		if matchesSuffixedMeta(e.Name, originalName) {
			return true
		}
		// A parseable paired note naming a different source wins over
		// filename similarity.
		notePath := filepath.Join(filepath.Dir(e.Path), domain.MetaNoteName(e.Name))
		if src := uc.metas.SourceFile(notePath); src != "" {
			return src == originalName
		}
		return matchesDerivedTask(e.Name, originalName)
	}
}

// sanitizedOriginal returns the original filename as it appears inside
// derived names (stem sanitized, extension preserved).
func sanitizedOriginal(originalName string) string {
	ext := filepath.Ext(originalName)
	return domain.SanitizeStem(strings.TrimSuffix(originalName, ext)) + ext
}

// matchesDerivedTask matches {ingestTS}_{stem}{ext} task copies, including
// collision-suffixed variants {ingestTS}_{stem}_N{ext}.
func matchesDerivedTask(name, originalName string) bool {
	sanitized := sanitizedOriginal(originalName)
	stripped := domain.StripTimestampPrefix(name)
	if stripped == name {
		// No ingest prefix: not a derived copy.
		return false
	}
	if stripped == sanitized {
		return true
	}
	ext := filepath.Ext(sanitized)
	stem := strings.TrimSuffix(sanitized, ext)
	return domain.MatchesWithCounter(stripped, stem, ext)
}

// matchesSuffixedMeta matches metadata-note copies whose collision
// counter landed after the note marker ({ingestTS}_{stem}_meta_N.md),
// the shape produced when an already-routed task is routed again. Such
// names no longer carry the _meta.md suffix, so the note matchers cannot
// see them.
func matchesSuffixedMeta(name, originalName string) bool {
	stripped := domain.StripTimestampPrefix(name)
	if stripped == name {
		return false
	}
	base, ok := strings.CutSuffix(stripped, ".md")
	if !ok {
		return false
	}
	sanitized := sanitizedOriginal(originalName)
	stem := strings.TrimSuffix(sanitized, filepath.Ext(sanitized))
	return domain.MatchesWithCounter(base, stem+"_meta", "")
}

// matchesDerivedMeta matches {ingestTS}_{stem}_meta.md notes, including
// collision-suffixed variants.
func matchesDerivedMeta(name, originalName string) bool {
	sanitized := sanitizedOriginal(originalName)
	stem := strings.TrimSuffix(sanitized, filepath.Ext(sanitized))
	stripped := domain.StripTimestampPrefix(name)
	if stripped == name {
		return false
	}
	if stripped == stem+domain.MetaNoteSuffix {
		return true
	}
	base, ok := strings.CutSuffix(stripped, domain.MetaNoteSuffix)
	if !ok {
		return false
	}
	return domain.MatchesWithCounter(base, stem, "")
}

// matchesPlan matches {procTS}_{ingestTS}_{stem}_plan.md documents.
func matchesPlan(name, originalName string) bool {
	sanitized := sanitizedOriginal(originalName)
	stem := strings.TrimSuffix(sanitized, filepath.Ext(sanitized))
	stripped := domain.StripTimestampPrefix(domain.StripTimestampPrefix(name))
	return stripped == stem+domain.PlanSuffix
}
