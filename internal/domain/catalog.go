package domain

// CatalogEntry is one append-only audit record in Logs/task_catalog.jsonl.
// Field names are part of the on-disk contract; do not rename the tags.
type CatalogEntry struct {
	Timestamp string `json:"timestamp"`
	File      string `json:"file"`
	Type      string `json:"type"`
	Action    string `json:"action"`
	Priority  string `json:"priority"`
	Tier      string `json:"tier"`
	Status    string `json:"status"`
	DryRun    bool   `json:"dry_run"`
}

// Catalog statuses.
const (
	StatusCompleted = "completed"
)
