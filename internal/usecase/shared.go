// Package usecase contains the application use cases driving the vault
// pipeline. Each use case is a small struct wired from ports plus the
// artifact store, with a single Execute method.
package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// requireInitialized fails when the vault layout has not been created yet.
func requireInitialized(store *vault.Store) error {
	dirs := store.Dirs()
	for _, dir := range []string{dirs.Inbox, dirs.NeedsAction} {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrNotInitialized, dirs.Root)
		}
	}
	return nil
}

// pendingTasks pairs the Needs_Action listing into task descriptors:
// every non-markdown file is a working copy, matched with its metadata
// note when one exists. Order follows the listing (oldest first).
func pendingTasks(entries []vault.Entry, metas domain.MetaReader) []domain.Task {
	noteByName := make(map[string]string, len(entries))
	for _, e := range entries {
		if domain.IsMetaNote(e.Name) {
			noteByName[e.Name] = e.Path
		}
	}

	var tasks []domain.Task
	for _, e := range entries {
		if domain.IsMetaNote(e.Name) || filepath.Ext(e.Name) == ".md" {
			continue
		}
		task := domain.TaskFromPath(e.Path, e.Size, e.Modified)
		if notePath, ok := noteByName[domain.MetaNoteName(e.Name)]; ok {
			task.MetaPath = notePath
			task.SourceFile = metas.SourceFile(notePath)
		}
		tasks = append(tasks, task)
	}
	return tasks
}
