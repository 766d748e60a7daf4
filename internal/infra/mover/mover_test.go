package mover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestMoveTransfersAndDeletesSource(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src", "report.txt")
	destDir := filepath.Join(root, "dest")
	writeFile(t, src, "quarterly numbers")

	m := New(false, logging.Discard())
	destPath, err := m.Move(src, destDir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "report.txt"), destPath)
	content, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(content))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source must be gone after verified move")
}

func TestMoveWithRename(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "report.txt")
	writeFile(t, src, "x")

	m := New(false, logging.Discard())
	destPath, err := m.Move(src, filepath.Join(root, "dest"), "20240101_000000_report.txt")
	require.NoError(t, err)
	assert.Equal(t, "20240101_000000_report.txt", filepath.Base(destPath))
}

func TestCopyKeepsSource(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "report.txt")
	writeFile(t, src, "x")

	m := New(false, logging.Discard())
	destPath, err := m.Copy(src, filepath.Join(root, "dest"), "")
	require.NoError(t, err)

	_, err = os.Stat(src)
	assert.NoError(t, err, "copy must not touch the source")
	_, err = os.Stat(destPath)
	assert.NoError(t, err)
}

func TestCollisionAppendsNumericSuffix(t *testing.T) {
	root := t.TempDir()
	destDir := filepath.Join(root, "dest")

	first := filepath.Join(root, "a", "report.txt")
	second := filepath.Join(root, "b", "report.txt")
	third := filepath.Join(root, "c", "report.txt")
	writeFile(t, first, "one")
	writeFile(t, second, "two")
	writeFile(t, third, "three")

	m := New(false, logging.Discard())

	p1, err := m.Move(first, destDir, "")
	require.NoError(t, err)
	p2, err := m.Move(second, destDir, "")
	require.NoError(t, err)
	p3, err := m.Move(third, destDir, "")
	require.NoError(t, err)

	assert.Equal(t, "report.txt", filepath.Base(p1))
	assert.Equal(t, "report_1.txt", filepath.Base(p2))
	assert.Equal(t, "report_2.txt", filepath.Base(p3))

	// All contents remain independently recoverable.
	c1, _ := os.ReadFile(p1)
	c2, _ := os.ReadFile(p2)
	c3, _ := os.ReadFile(p3)
	assert.Equal(t, "one", string(c1))
	assert.Equal(t, "two", string(c2))
	assert.Equal(t, "three", string(c3))
}

func TestMoveMissingSource(t *testing.T) {
	m := New(false, logging.Discard())
	_, err := m.Move(filepath.Join(t.TempDir(), "gone.txt"), t.TempDir(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceMissing)
}

func TestDryRunMoveTouchesNothing(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "report.txt")
	destDir := filepath.Join(root, "dest")
	writeFile(t, src, "x")

	m := New(true, logging.Discard())
	destPath, err := m.Move(src, destDir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "report.txt"), destPath)

	_, err = os.Stat(src)
	assert.NoError(t, err, "dry-run must leave the source in place")
	_, err = os.Stat(destDir)
	assert.True(t, os.IsNotExist(err), "dry-run must not create the destination")
}
