package plan

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vaultpipe/internal/domain"
)

func TestRenderCompletedPlan(t *testing.T) {
	r := New()
	task := domain.Task{Name: "20240102_150405_report.txt", Size: 42}
	c := domain.Classification{
		Type:     domain.TypeNote,
		Priority: domain.PriorityMedium,
		Action:   "generate_summary",
	}

	out, err := r.Render(task, c, time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "task_file: 20240102_150405_report.txt")
	assert.Contains(t, out, "task_type: note")
	assert.Contains(t, out, "requires_approval: false")
	assert.Contains(t, out, "status: pending")
	assert.Contains(t, out, "- [ ] Write an executive summary")
	assert.Contains(t, out, "| Size | 42 bytes |")
	assert.NotContains(t, out, "Human Approval Required")
}

func TestRenderApprovalBlock(t *testing.T) {
	r := New()
	c := domain.Classification{
		Type:             domain.TypeEmail,
		Priority:         domain.PriorityUrgent,
		Action:           "parse_and_respond",
		RequiresApproval: true,
	}

	out, err := r.Render(domain.Task{Name: "m.eml"}, c, time.Now())
	require.NoError(t, err)
	assert.Contains(t, out, "Human Approval Required")
	assert.Contains(t, out, "requires_approval: true")
}

func TestRenderUnknownActionFallsBack(t *testing.T) {
	r := New()
	out, err := r.Render(domain.Task{Name: "x"}, domain.Classification{Action: "no_such_action"}, time.Now())
	require.NoError(t, err)
	assert.Contains(t, out, "- [ ] Apply standard processing rules")
}
