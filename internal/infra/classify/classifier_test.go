package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/vaultpipe/internal/domain"
)

func task(name, ext string) domain.Task {
	return domain.Task{Name: name, Ext: ext}
}

func TestClassifyByExtension(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		ext  string
		want domain.TaskType
	}{
		{"memo.pdf", ".pdf", domain.TypeDocument},
		{"numbers.xlsx", ".xlsx", domain.TypeSpreadsheet},
		{"photo.png", ".png", domain.TypeImage},
		{"main.go", ".go", domain.TypeCode},
		{"mail.eml", ".eml", domain.TypeEmail},
		{"bundle.zip", ".zip", domain.TypeArchive},
		{"notes.txt", ".txt", domain.TypeNote},
		{"rows.csv", ".csv", domain.TypeData},
		{"blob.xyz", ".xyz", domain.TypeUnknown},
	}
	for _, tt := range tests {
		got := c.Classify(task(tt.name, tt.ext))
		assert.Equal(t, tt.want, got.Type, tt.name)
	}
}

func TestClassifyPriorityKeywords(t *testing.T) {
	c := New()

	assert.Equal(t, domain.PriorityUrgent, c.Classify(task("urgent_contract.txt", ".txt")).Priority)
	assert.Equal(t, domain.PriorityHigh, c.Classify(task("deadline_notes.txt", ".txt")).Priority)
	assert.Equal(t, domain.PriorityLow, c.Classify(task("fyi_stuff.txt", ".txt")).Priority)
	assert.Equal(t, domain.PriorityMedium, c.Classify(task("plain.txt", ".txt")).Priority)
}

func TestClassifyActionOverrides(t *testing.T) {
	c := New()

	// Type default.
	assert.Equal(t, "read_and_classify", c.Classify(task("plain.txt", ".txt")).Action)
	// Keyword override beats the type default.
	assert.Equal(t, "generate_summary", c.Classify(task("quarterly_report.txt", ".txt")).Action)
	assert.Equal(t, "process_task_list", c.Classify(task("todo_list.txt", ".txt")).Action)
	// Unknown type falls back to general processing.
	assert.Equal(t, domain.ActionGeneral, c.Classify(task("blob.xyz", ".xyz")).Action)
}

func TestClassifyApprovalGate(t *testing.T) {
	c := New()

	assert.True(t, c.Classify(task("urgent_contract.txt", ".txt")).RequiresApproval, "urgent priority")
	assert.True(t, c.Classify(task("mail.eml", ".eml")).RequiresApproval, "email type")
	assert.True(t, c.Classify(task("main.go", ".go")).RequiresApproval, "code type")
	assert.False(t, c.Classify(task("quarterly_report.txt", ".txt")).RequiresApproval)
}

func TestClassifyIsTotalOnEmptyInput(t *testing.T) {
	c := New()
	got := c.Classify(domain.Task{})
	assert.Equal(t, domain.TypeUnknown, got.Type)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.Equal(t, domain.ActionGeneral, got.Action)
}
