// Package config loads vault configuration from vault.toml with an
// environment override for dry-run mode. The loaded value is threaded
// through constructors; nothing reads configuration ambiently.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// DryRunEnv is the environment variable that forces dry-run mode.
const DryRunEnv = "DRY_RUN"

// fileConfig is the on-disk schema of vault.toml.
type fileConfig struct {
	DryRun *bool  `toml:"dry_run"`
	Tier   string `toml:"tier"`
	Recent int    `toml:"recent_items"`
	Log    struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Alerts struct {
		QueueDepth   int `toml:"queue_depth"`
		InboxBacklog int `toml:"inbox_backlog"`
	} `toml:"alerts"`
	Settle struct {
		TimeoutSeconds int `toml:"timeout_seconds"`
		IntervalMillis int `toml:"interval_millis"`
	} `toml:"settle"`
	Snapshot struct {
		Enabled bool `toml:"enabled"`
	} `toml:"snapshot"`
}

// Loader loads configuration for a vault.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the config file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the configuration: defaults, overlaid with vault.toml if
// present, overlaid with the DRY_RUN environment switch. A missing config
// file is not an error.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	content, err := os.ReadFile(l.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		var fc fileConfig
		if err := toml.Unmarshal(content, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.path, err)
		}
		applyFile(cfg, &fc)
	}

	if envDryRun() {
		cfg.DryRun = true
	}

	return cfg, nil
}

func applyFile(cfg *domain.Config, fc *fileConfig) {
	if fc.DryRun != nil {
		cfg.DryRun = *fc.DryRun
	}
	if fc.Tier != "" {
		cfg.Tier = fc.Tier
	}
	if fc.Recent > 0 {
		cfg.Recent = fc.Recent
	}
	if fc.Log.Level != "" {
		cfg.Log.Level = fc.Log.Level
	}
	if fc.Alerts.QueueDepth > 0 {
		cfg.Alerts.QueueDepth = fc.Alerts.QueueDepth
	}
	if fc.Alerts.InboxBacklog > 0 {
		cfg.Alerts.InboxBacklog = fc.Alerts.InboxBacklog
	}
	if fc.Settle.TimeoutSeconds > 0 {
		cfg.Settle.Timeout = time.Duration(fc.Settle.TimeoutSeconds) * time.Second
	}
	if fc.Settle.IntervalMillis > 0 {
		cfg.Settle.Interval = time.Duration(fc.Settle.IntervalMillis) * time.Millisecond
	}
	cfg.Snapshot.Enabled = fc.Snapshot.Enabled
}

func envDryRun() bool {
	switch strings.ToLower(os.Getenv(DryRunEnv)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// DefaultFileContent is the vault.toml written by 'vaultpipe init'.
const DefaultFileContent = `# vaultpipe configuration

# Simulate every write and move without touching the vault.
# The DRY_RUN environment variable (true/1/yes) overrides this.
dry_run = false

# Recorded in every catalog entry.
tier = "bronze"

# Dashboard recent-items cap.
recent_items = 15

[log]
level = "info"

[alerts]
queue_depth = 10
inbox_backlog = 5

[settle]
timeout_seconds = 30
interval_millis = 500

[snapshot]
# Commit the vault into a local git repository after each pipeline pass.
enabled = false
`
