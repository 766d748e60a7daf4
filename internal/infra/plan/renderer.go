// Package plan renders checklist plan documents for classified tasks.
// Bronze-tier plans are template-based, keyed on the classified action;
// the orchestrator only sees the domain.PlanRenderer port.
package plan

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Ensure Renderer implements domain.PlanRenderer.
var _ domain.PlanRenderer = (*Renderer)(nil)

// frontmatter is the YAML header of a plan document.
type frontmatter struct {
	Title            string `yaml:"title"`
	TaskFile         string `yaml:"task_file"`
	TaskType         string `yaml:"task_type"`
	Priority         string `yaml:"priority"`
	Action           string `yaml:"action"`
	RequiresApproval bool   `yaml:"requires_approval"`
	Created          string `yaml:"created"`
	Status           string `yaml:"status"`
}

var stepsByAction = map[string][]string{
	"read_and_classify": {
		"Read the file content in full",
		"Identify the document type and primary subject",
		"Extract key information",
		"Summarize in 3-5 bullet points",
		"Tag with relevant labels",
		"Route to the appropriate folder",
	},
	"generate_summary": {
		"Read the full document",
		"Identify main topics and key findings",
		"Write an executive summary",
		"List concrete action items and owners",
		"Note deadlines and hard dependencies",
	},
	"process_task_list": {
		"Parse all task items from the file",
		"Sort by urgency and importance",
		"Identify dependencies between tasks",
		"Flag tasks that require a human decision",
		"Create a structured breakdown",
	},
	"analyze_and_report": {
		"Validate the file structure",
		"Identify schema, column types, and row count",
		"Check for missing values or anomalies",
		"Compute basic summary statistics",
		"Generate an insight report",
	},
	"parse_and_respond": {
		"Parse headers: sender, recipient, date, subject",
		"Extract body content and attachments list",
		"Extract action items from the body",
		"Draft a response outline (requires approval before sending)",
		"Log to the communication audit trail",
	},
	"review_code": {
		"Read and understand the code structure",
		"Check for syntax and obvious logic errors",
		"Identify potential security concerns",
		"Note test coverage gaps",
		"Flag items requiring developer follow-up",
	},
	"catalog_and_archive": {
		"Verify file integrity (size and hash)",
		"Determine file type and intended purpose",
		"Add an entry to the asset catalog",
		"Move to the appropriate archive subfolder",
	},
	"extract_and_catalog": {
		"Verify the archive is not corrupted",
		"List archive contents without extracting",
		"Extract to a sandboxed staging folder",
		"Catalog and route the extracted files",
	},
	domain.ActionGeneral: {
		"Read and understand the file",
		"Determine the most appropriate handling approach",
		"Apply standard processing rules",
		"Document key findings in a note",
		"Route to the appropriate vault folder",
	},
}

var bodyTmpl = template.Must(template.New("plan").Parse(`# Plan: {{.TaskName}}

| Field | Value |
|-------|-------|
| Created | {{.Created}} |
| File | ` + "`{{.TaskName}}`" + ` |
| Type | {{.Type}} |
| Priority | {{.Priority}} |
| Action | {{.Action}} |
| Size | {{.Size}} bytes |
| Requires Approval | {{if .RequiresApproval}}Yes{{else}}No{{end}} |
{{if .RequiresApproval}}
## Human Approval Required

This task is urgent or has potential external impact. Copies of the plan,
the task file, and its metadata are in Pending_Approval/.

- Approve: move them to Approved/
- Reject: move them to Rejected/
{{end}}
## Execution Checklist

{{range .Steps}}- [ ] {{.}}
{{end}}
## Completion Checklist

- [ ] All execution steps completed
- [ ] Dashboard refreshed
- [ ] Task file moved to Done/
- [ ] Catalog entry written to Logs/task_catalog.jsonl
`))

// Renderer produces plan documents.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render returns the plan document for a classified task. Unknown actions
// fall back to the general-processing template; Render is total over any
// Classification a Classifier can produce.
func (r *Renderer) Render(task domain.Task, c domain.Classification, now time.Time) (string, error) {
	fm := frontmatter{
		Title:            "Plan: " + task.Name,
		TaskFile:         task.Name,
		TaskType:         string(c.Type),
		Priority:         string(c.Priority),
		Action:           c.Action,
		RequiresApproval: c.RequiresApproval,
		Created:          now.Format("2006-01-02 15:04:05"),
		Status:           "pending",
	}

	header, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshal plan frontmatter: %w", err)
	}

	steps, ok := stepsByAction[c.Action]
	if !ok {
		steps = stepsByAction[domain.ActionGeneral]
	}

	var body strings.Builder
	err = bodyTmpl.Execute(&body, struct {
		TaskName         string
		Created          string
		Type             string
		Priority         string
		Action           string
		Steps            []string
		Size             int64
		RequiresApproval bool
	}{
		TaskName:         task.Name,
		Created:          fm.Created,
		Type:             string(c.Type),
		Priority:         string(c.Priority),
		Action:           c.Action,
		Steps:            steps,
		Size:             task.Size,
		RequiresApproval: c.RequiresApproval,
	})
	if err != nil {
		return "", fmt.Errorf("render plan body: %w", err)
	}

	return "---\n" + string(header) + "---\n\n" + body.String(), nil
}
