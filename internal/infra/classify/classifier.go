// Package classify implements the rule-based task classifier.
// Classification is a pure lookup on extension and filename keywords; the
// orchestrator depends only on the domain.Classifier port, so this
// implementation can be swapped without touching the pipeline.
package classify

import (
	"strings"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Ensure Classifier implements domain.Classifier.
var _ domain.Classifier = (*Classifier)(nil)

// Classifier assigns type, priority, action, and an approval gate from
// filename heuristics.
type Classifier struct{}

// New creates a Classifier.
func New() *Classifier {
	return &Classifier{}
}

var typeByExt = map[string]domain.TaskType{
	".pdf": domain.TypeDocument, ".docx": domain.TypeDocument, ".doc": domain.TypeDocument,
	".rtf": domain.TypeDocument, ".odt": domain.TypeDocument,
	".xlsx": domain.TypeSpreadsheet, ".xls": domain.TypeSpreadsheet, ".ods": domain.TypeSpreadsheet,
	".jpg": domain.TypeImage, ".jpeg": domain.TypeImage, ".png": domain.TypeImage,
	".gif": domain.TypeImage, ".bmp": domain.TypeImage, ".svg": domain.TypeImage, ".webp": domain.TypeImage,
	".py": domain.TypeCode, ".js": domain.TypeCode, ".ts": domain.TypeCode, ".html": domain.TypeCode,
	".css": domain.TypeCode, ".json": domain.TypeCode, ".yaml": domain.TypeCode, ".yml": domain.TypeCode,
	".sh": domain.TypeCode, ".bat": domain.TypeCode, ".ps1": domain.TypeCode, ".rb": domain.TypeCode,
	".go": domain.TypeCode,
	".eml": domain.TypeEmail, ".msg": domain.TypeEmail,
	".zip": domain.TypeArchive, ".tar": domain.TypeArchive, ".gz": domain.TypeArchive,
	".7z": domain.TypeArchive, ".rar": domain.TypeArchive,
	".txt": domain.TypeNote, ".md": domain.TypeNote,
	".csv": domain.TypeData, ".tsv": domain.TypeData, ".xml": domain.TypeData,
}

// priorityKeywords is checked in order; the first matching tier wins.
var priorityKeywords = []struct {
	priority domain.Priority
	words    []string
}{
	{domain.PriorityUrgent, []string{"urgent", "asap", "critical", "emergency", "immediate"}},
	{domain.PriorityHigh, []string{"important", "high", "priority", "deadline", "needed"}},
	{domain.PriorityLow, []string{"low", "minor", "optional", "sometime", "fyi"}},
}

var actionByType = map[domain.TaskType]string{
	domain.TypeDocument:    "read_and_classify",
	domain.TypeSpreadsheet: "analyze_and_report",
	domain.TypeImage:       "catalog_and_archive",
	domain.TypeCode:        "review_code",
	domain.TypeEmail:       "parse_and_respond",
	domain.TypeArchive:     "extract_and_catalog",
	domain.TypeNote:        "read_and_classify",
	domain.TypeData:        "analyze_and_report",
	domain.TypeUnknown:     domain.ActionGeneral,
}

// keywordActions override the type default; checked in this order.
var keywordActions = []struct {
	word   string
	action string
}{
	{"review", "read_and_classify"},
	{"report", "generate_summary"},
	{"summary", "generate_summary"},
	{"task", "process_task_list"},
	{"todo", "process_task_list"},
	{"meeting", "generate_summary"},
	{"invoice", "generate_summary"},
}

// Classify derives a Classification from the task's filename. Total:
// anything unrecognized resolves to unknown/medium/general_processing.
func (c *Classifier) Classify(task domain.Task) domain.Classification {
	nameLower := strings.ToLower(task.Name)

	taskType, ok := typeByExt[task.Ext]
	if !ok {
		taskType = domain.TypeUnknown
	}

	priority := domain.PriorityMedium
	for _, tier := range priorityKeywords {
		if containsAny(nameLower, tier.words) {
			priority = tier.priority
			break
		}
	}

	action, ok := actionByType[taskType]
	if !ok {
		action = domain.ActionGeneral
	}
	for _, kw := range keywordActions {
		if strings.Contains(nameLower, kw.word) {
			action = kw.action
			break
		}
	}

	// Safety gate: urgent work and externally visible types go to a human.
	requiresApproval := priority == domain.PriorityUrgent ||
		taskType == domain.TypeEmail || taskType == domain.TypeCode

	return domain.Classification{
		Type:             taskType,
		Priority:         priority,
		Action:           action,
		RequiresApproval: requiresApproval,
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
