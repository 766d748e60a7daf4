package domain

import "time"

// Classifier assigns a Classification to a task. Implementations must be
// pure and total: unrecognized input resolves to TypeUnknown and
// ActionGeneral rather than failing. The orchestrator still guards against
// a misbehaving implementation and skips the task on panic.
type Classifier interface {
	Classify(task Task) Classification
}

// PlanRenderer produces a plan document for a classified task.
type PlanRenderer interface {
	Render(task Task, c Classification, now time.Time) (string, error)
}

// Mover relocates files between vault directories with copy-verify-delete
// semantics. It is the only sanctioned path for cross-directory transfer.
type Mover interface {
	// Move transfers source into destDir, optionally renamed. The source
	// is deleted only after the destination is verified.
	Move(source, destDir, newName string) (string, error)

	// Copy duplicates source into destDir without touching the source.
	Copy(source, destDir, newName string) (string, error)
}

// Catalog manages the append-only audit log.
type Catalog interface {
	// Append writes one entry as a JSON line.
	Append(entry CatalogEntry) error

	// RemoveFile drops every line recorded for the given original filename
	// via an atomic rewrite, returning the number of lines dropped.
	RemoveFile(originalName string) (int, error)

	// Entries returns all parseable catalog entries.
	Entries() ([]CatalogEntry, error)
}

// DashboardWriter regenerates the aggregate view from current vault state.
type DashboardWriter interface {
	Refresh() error
}

// Snapshotter records the vault tree into version control for audit history.
type Snapshotter interface {
	// Commit stages the vault and commits with the given message.
	// A clean tree is a successful no-op.
	Commit(message string) error
}

// MetaWriter renders the metadata note paired with a newly ingested file.
type MetaWriter interface {
	// Note builds the note document. sourcePath is the original inbox
	// file, destName the derived working-copy filename.
	Note(sourcePath, destName string, size int64, now time.Time) (string, error)
}

// MetaReader extracts identity fields from a metadata note.
type MetaReader interface {
	// SourceFile returns the original inbox filename recorded in the note,
	// or "" if the note is missing or unparseable.
	SourceFile(path string) string

	// DestinationName returns the derived working-copy filename recorded
	// in the note, or "".
	DestinationName(path string) string
}

// Logger is the process-wide logging port.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
