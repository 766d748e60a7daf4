package domain

import "path/filepath"

// Well-known vault file names.
const (
	ConfigFileName    = "vault.toml"
	DashboardFileName = "Dashboard.md"
	CatalogFileName   = "task_catalog.jsonl"
	LogFileName       = "vaultpipe.log"
)

// Dirs resolves the fixed vault directory layout against a root.
// The directory names are case-sensitive and part of the external contract.
type Dirs struct {
	Root            string
	Inbox           string
	NeedsAction     string
	Plans           string
	PendingApproval string
	Approved        string
	Rejected        string
	Done            string
	Logs            string
}

// NewDirs returns the vault layout rooted at root.
func NewDirs(root string) Dirs {
	return Dirs{
		Root:            root,
		Inbox:           filepath.Join(root, "Inbox"),
		NeedsAction:     filepath.Join(root, "Needs_Action"),
		Plans:           filepath.Join(root, "Plans"),
		PendingApproval: filepath.Join(root, "Pending_Approval"),
		Approved:        filepath.Join(root, "Approved"),
		Rejected:        filepath.Join(root, "Rejected"),
		Done:            filepath.Join(root, "Done"),
		Logs:            filepath.Join(root, "Logs"),
	}
}

// All returns every vault directory, root excluded.
func (d Dirs) All() []string {
	return []string{
		d.Inbox, d.NeedsAction, d.Plans, d.PendingApproval,
		d.Approved, d.Rejected, d.Done, d.Logs,
	}
}

// DashboardPath returns the path of the regenerated dashboard document.
func (d Dirs) DashboardPath() string {
	return filepath.Join(d.Root, DashboardFileName)
}

// CatalogPath returns the path of the append-only audit log.
func (d Dirs) CatalogPath() string {
	return filepath.Join(d.Logs, CatalogFileName)
}

// LogPath returns the path of the process log file.
func (d Dirs) LogPath() string {
	return filepath.Join(d.Logs, LogFileName)
}

// ConfigPath returns the path of the vault configuration file.
func (d Dirs) ConfigPath() string {
	return filepath.Join(d.Root, ConfigFileName)
}
