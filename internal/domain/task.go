// Package domain contains core business entities and interfaces.
package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Task represents one pending unit of work discovered in Needs_Action.
// Identity is the original inbox filename; the Needs_Action copy carries
// an ingest-timestamp prefix and is disposable.
// Fields are ordered to minimize memory padding.
type Task struct {
	Modified   time.Time `json:"modified"`             // mtime of the working copy
	Name       string    `json:"name"`                 // derived filename, e.g. 20240101_120000_report.txt
	Stem       string    `json:"stem"`                 // derived filename without extension
	Ext        string    `json:"ext"`                  // lowercase extension including dot
	Path       string    `json:"path"`                 // absolute path of the working copy
	MetaPath   string    `json:"metaPath,omitempty"`   // absolute path of the paired meta note ("" if missing)
	SourceFile string    `json:"sourceFile,omitempty"` // original inbox filename recovered from the meta note
	Size       int64     `json:"size"`                 // size of the working copy in bytes
}

// HasMeta returns true if the task has a paired metadata note.
func (t *Task) HasMeta() bool {
	return t.MetaPath != ""
}

// Original returns the best known original inbox filename for the task.
// It prefers the meta note's source_file; without a meta note it strips
// the ingest-timestamp prefix from the derived name.
func (t *Task) Original() string {
	if t.SourceFile != "" {
		return t.SourceFile
	}
	return StripTimestampPrefix(t.Name)
}

// TaskFromPath builds a Task descriptor from a working-copy path.
func TaskFromPath(path string, size int64, modified time.Time) Task {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))
	return Task{
		Name:     name,
		Stem:     strings.TrimSuffix(name, filepath.Ext(name)),
		Ext:      ext,
		Path:     path,
		Modified: modified,
		Size:     size,
	}
}

// RunReport summarizes one orchestrator pass over Needs_Action.
type RunReport struct {
	Processed         int `json:"processed"`
	PlansCreated      int `json:"plansCreated"`
	Completed         int `json:"completed"`
	RoutedForApproval int `json:"routedForApproval"`
	Errors            int `json:"errors"`
}

// RollbackReport describes what a rollback removed.
type RollbackReport struct {
	Removed               []string `json:"removed"`
	CatalogEntriesRemoved int      `json:"catalogEntriesRemoved"`
}
