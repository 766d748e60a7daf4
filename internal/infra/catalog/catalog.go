// Package catalog manages the append-only audit log at
// Logs/task_catalog.jsonl. Appends are plain O_APPEND writes; the only
// mutation is rollback compaction, which rewrites the file through an
// atomic temp-file-then-rename so a crash cannot truncate it.
package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Ensure Catalog implements domain.Catalog.
var _ domain.Catalog = (*Catalog)(nil)

// Catalog is the JSONL audit log.
type Catalog struct {
	logger domain.Logger
	path   string
	dryRun bool
}

// New creates a Catalog at the given path.
func New(path string, dryRun bool, logger domain.Logger) *Catalog {
	return &Catalog{path: path, dryRun: dryRun, logger: logger}
}

// Append writes one entry as a single JSON line.
func (c *Catalog) Append(entry domain.CatalogEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal catalog entry: %w", err)
	}

	if c.dryRun {
		c.logger.Info("catalog", fmt.Sprintf("[dry-run] would append: %s", line))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o750); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec // audit log is vault-readable
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append catalog entry: %w", err)
	}
	return nil
}

// RemoveFile drops every line whose recorded file matches originalName and
// rewrites the catalog atomically. Unparseable lines are preserved
// verbatim. A missing catalog reports zero removals.
func (c *Catalog) RemoveFile(originalName string) (int, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read catalog: %w", err)
	}

	var kept []string
	removed := 0
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry domain.CatalogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			kept = append(kept, line)
			continue
		}
		if matchesFile(entry.File, originalName) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan catalog: %w", err)
	}

	if removed == 0 {
		return 0, nil
	}

	if c.dryRun {
		c.logger.Info("catalog", fmt.Sprintf("[dry-run] would drop %d entries for %s", removed, originalName))
		return removed, nil
	}

	out := ""
	if len(kept) > 0 {
		out = strings.Join(kept, "\n") + "\n"
	}
	if err := writeAtomic(c.path, []byte(out), 0o644); err != nil {
		return 0, err
	}
	return removed, nil
}

// Entries returns every parseable catalog entry in file order.
func (c *Catalog) Entries() ([]domain.CatalogEntry, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries []domain.CatalogEntry
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry domain.CatalogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// matchesFile matches a catalog line's file field against an original
// inbox filename. Lines record either the original name or a derived,
// timestamp-prefixed copy of it, possibly carrying a collision counter
// when the same original was re-ingested within one timestamp second.
func matchesFile(recorded, originalName string) bool {
	if recorded == originalName {
		return true
	}
	ext := filepath.Ext(originalName)
	stem := domain.SanitizeStem(strings.TrimSuffix(originalName, ext))
	stripped := domain.StripTimestampPrefix(recorded)
	if stripped == stem+ext {
		return true
	}
	return stripped != recorded && domain.MatchesWithCounter(stripped, stem, ext)
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
