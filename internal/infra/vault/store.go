// Package vault provides the artifact store over the vault directory tree.
// Every operation degrades to an empty or absent result on failure instead
// of propagating an error; a missing directory or unreadable file must
// never abort a pipeline run.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Entry describes one file in a vault directory listing.
// Fields are ordered to minimize memory padding.
type Entry struct {
	Modified time.Time
	Name     string
	Path     string
	Size     int64
}

// Store implements read/write/list primitives for the vault tree.
type Store struct {
	logger domain.Logger
	dirs   domain.Dirs
	dryRun bool
}

// New creates a Store for the given layout. When dryRun is set, every
// mutating operation is logged and reported successful without touching
// the filesystem.
func New(dirs domain.Dirs, dryRun bool, logger domain.Logger) *Store {
	return &Store{dirs: dirs, dryRun: dryRun, logger: logger}
}

// Dirs returns the vault layout the store operates on.
func (s *Store) Dirs() domain.Dirs {
	return s.dirs
}

// DryRun reports whether the store simulates writes.
func (s *Store) DryRun() bool {
	return s.dryRun
}

// EnsureLayout creates every vault directory. This is the only store
// operation allowed to fail loudly; it runs at init time, before any
// pipeline work.
func (s *Store) EnsureLayout() error {
	for _, dir := range s.dirs.All() {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create vault directory %s: %w", dir, err)
		}
	}
	return nil
}

// Read returns the content of a vault file. The second return value is
// false when the file is missing or unreadable.
func (s *Store) Read(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("store", fmt.Sprintf("read %s: %v", filepath.Base(path), err))
		}
		return "", false
	}
	return string(content), true
}

// List returns the files in a directory ordered by modification time,
// oldest first. A missing or unreadable directory yields an empty slice.
func (s *Store) List(dir string) []Entry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("store", fmt.Sprintf("list %s: %v", dir, err))
		}
		return nil
	}

	files := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, Entry{
			Name:     e.Name(),
			Path:     filepath.Join(dir, e.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	slices.SortFunc(files, func(a, b Entry) int {
		return a.Modified.Compare(b.Modified)
	})

	return files
}

// ListChecked is List for callers that must distinguish a catastrophic
// failure: a directory that exists but cannot be enumerated returns
// domain.ErrVaultUnreadable. A missing directory is still an empty listing.
func (s *Store) ListChecked(dir string) ([]Entry, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrVaultUnreadable, dir, err)
	}
	if _, err := os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrVaultUnreadable, dir, err)
	}
	return s.List(dir), nil
}

// ListExt returns the directory listing filtered by extension (case
// insensitive, including the dot).
func (s *Store) ListExt(dir, ext string) []Entry {
	var filtered []Entry
	for _, e := range s.List(dir) {
		if strings.EqualFold(filepath.Ext(e.Name), ext) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Write persists content to a vault file, creating parent directories as
// needed. It returns false if the file exists and overwrite is unset, or
// on any I/O failure. Writes are atomic (temp file then rename).
func (s *Store) Write(path string, content string, overwrite bool) bool {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			s.logger.Warn("store", fmt.Sprintf("write refused, exists: %s", filepath.Base(path)))
			return false
		}
	}
	if s.dryRun {
		s.logger.Info("store", fmt.Sprintf("[dry-run] would write %d bytes to %s", len(content), path))
		return true
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		s.logger.Error("store", fmt.Sprintf("write %s: %v", filepath.Base(path), err))
		return false
	}
	if err := writeAtomic(path, []byte(content), 0o644); err != nil {
		s.logger.Error("store", fmt.Sprintf("write %s: %v", filepath.Base(path), err))
		return false
	}
	return true
}

// Remove deletes a vault file. Returns true only when a file was actually
// removed; a missing file is a quiet no-op.
func (s *Store) Remove(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if s.dryRun {
		s.logger.Info("store", fmt.Sprintf("[dry-run] would remove %s", path))
		return true
	}
	if err := os.Remove(path); err != nil {
		s.logger.Warn("store", fmt.Sprintf("remove %s: %v", filepath.Base(path), err))
		return false
	}
	return true
}

// writeAtomic writes content to a temp file and renames it into place so
// a crash cannot leave a partially written file at path.
func writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
