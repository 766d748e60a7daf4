package domain

// TaskType categorizes a task by the kind of file it came from.
type TaskType string

// Task types.
const (
	TypeDocument    TaskType = "document"
	TypeSpreadsheet TaskType = "spreadsheet"
	TypeImage       TaskType = "image"
	TypeCode        TaskType = "code"
	TypeEmail       TaskType = "email"
	TypeArchive     TaskType = "archive"
	TypeNote        TaskType = "note"
	TypeData        TaskType = "data"
	TypeUnknown     TaskType = "unknown"
)

// Priority is the urgency tier assigned at classification time.
type Priority string

// Priorities.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionGeneral is the fallback action for unrecognized input.
const ActionGeneral = "general_processing"

// Classification is the result of classifying a task. It is attached once
// and never patched; a re-run classifies from scratch.
// Fields are ordered to minimize memory padding.
type Classification struct {
	Type             TaskType `json:"type"`
	Priority         Priority `json:"priority"`
	Action           string   `json:"action"`
	RequiresApproval bool     `json:"requiresApproval"`
}
