// Package mover implements copy-verify-delete transfers between vault
// directories. It is the only component that relocates files; everything
// else goes through it so partial failures can never lose data.
package mover

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Ensure Mover implements domain.Mover.
var _ domain.Mover = (*Mover)(nil)

// Mover transfers files with verification before source deletion.
type Mover struct {
	logger domain.Logger
	dryRun bool
}

// New creates a Mover. Dry-run transfers are logged and return the
// destination path they would have produced without touching the disk.
func New(dryRun bool, logger domain.Logger) *Mover {
	return &Mover{dryRun: dryRun, logger: logger}
}

// Move transfers source into destDir (optionally renamed), deleting the
// source only after the destination is verified. If source deletion fails
// after a verified copy, both copies are left in place and a warning is
// logged; a duplicate is the tolerated failure mode, not data loss.
func (m *Mover) Move(source, destDir, newName string) (string, error) {
	destPath, err := m.transfer(source, destDir, newName)
	if err != nil {
		return "", err
	}
	if m.dryRun {
		return destPath, nil
	}
	if err := os.Remove(source); err != nil {
		m.logger.Warn("mover", fmt.Sprintf("source not removed after verified copy, duplicate kept: %s: %v", filepath.Base(source), err))
	}
	return destPath, nil
}

// Copy duplicates source into destDir without touching the source.
func (m *Mover) Copy(source, destDir, newName string) (string, error) {
	return m.transfer(source, destDir, newName)
}

func (m *Mover) transfer(source, destDir, newName string) (string, error) {
	name := newName
	if name == "" {
		name = filepath.Base(source)
	}
	destPath := collisionSafePath(filepath.Join(destDir, name))

	// Dry-run skips the source check too: an earlier dry-run step may have
	// only simulated writing the file this transfer picks up.
	if m.dryRun {
		m.logger.Info("mover", fmt.Sprintf("[dry-run] would transfer %s to %s", filepath.Base(source), destPath))
		return destPath, nil
	}

	srcInfo, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrSourceMissing, source)
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return "", fmt.Errorf("create destination dir: %w", err)
	}

	if err := copyFile(source, destPath, srcInfo); err != nil {
		// Remove any partial destination; the source stays untouched.
		_ = os.Remove(destPath)
		return "", err
	}

	destInfo, err := os.Stat(destPath)
	if err != nil || destInfo.Size() != srcInfo.Size() {
		_ = os.Remove(destPath)
		return "", fmt.Errorf("%w: %s", domain.ErrCopyVerification, filepath.Base(source))
	}

	return destPath, nil
}

// copyFile duplicates bytes and the modification time.
func copyFile(source, dest string, srcInfo os.FileInfo) error {
	in, err := os.Open(source) //nolint:gosec // paths are vault-internal
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm()) //nolint:gosec // paths are vault-internal
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy bytes: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flush destination: %w", err)
	}

	_ = os.Chtimes(dest, srcInfo.ModTime(), srcInfo.ModTime())
	return nil
}

// collisionSafePath appends an incrementing numeric suffix before the
// extension until the path is free. Existing files are never overwritten.
func collisionSafePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
