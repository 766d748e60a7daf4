package domain

import "time"

// Config is the runtime configuration for the vault pipeline.
// Dry-run is threaded through constructors, never read ambiently.
type Config struct {
	DryRun   bool           // simulate every write/move
	Tier     string         // recorded in catalog entries
	Log      LogConfig      // [log]
	Alerts   AlertConfig    // [alerts]
	Recent   int            // dashboard recent-items cap
	Settle   SettleConfig   // [settle] inbox file stabilization
	Snapshot SnapshotConfig // [snapshot]
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// AlertConfig holds dashboard alert thresholds.
type AlertConfig struct {
	QueueDepth   int // Needs_Action count above which to alert
	InboxBacklog int // Inbox count above which to alert
}

// SettleConfig controls how long the watcher waits for an inbox file's
// size to stop changing before ingesting it.
type SettleConfig struct {
	Timeout  time.Duration
	Interval time.Duration
}

// SnapshotConfig controls vault git snapshots.
type SnapshotConfig struct {
	Enabled bool // commit the vault after each pipeline pass
}

// NewDefaultConfig returns the default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Tier:   "bronze",
		Log:    LogConfig{Level: "info"},
		Alerts: AlertConfig{QueueDepth: 10, InboxBacklog: 5},
		Recent: 15,
		Settle: SettleConfig{
			Timeout:  30 * time.Second,
			Interval: 500 * time.Millisecond,
		},
	}
}
