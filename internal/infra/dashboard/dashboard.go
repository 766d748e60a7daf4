// Package dashboard regenerates the vault's aggregate view. The dashboard
// is derived, disposable, and fully rewritten on every refresh; it is
// never a source of truth.
package dashboard

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// Ensure Writer implements domain.DashboardWriter.
var _ domain.DashboardWriter = (*Writer)(nil)

// Writer computes a snapshot from directory listings and rewrites
// Dashboard.md.
type Writer struct {
	store  *vault.Store
	clock  domain.Clock
	logger domain.Logger
	cfg    *domain.Config
}

// New creates a dashboard Writer.
func New(store *vault.Store, cfg *domain.Config, clock domain.Clock, logger domain.Logger) *Writer {
	return &Writer{store: store, cfg: cfg, clock: clock, logger: logger}
}

// snapshot is the template input, computed purely from listings so the
// same tree always renders the same document (modulo the timestamp line).
type snapshot struct {
	Updated        string
	Mode           string
	InboxCount     int
	PendingCount   int
	PlanCount      int
	ApprovalCount  int
	ApprovedCount  int
	RejectedCount  int
	DoneCount      int
	DoneTodayCount int
	Pending        []taskRow
	DoneToday      []doneRow
	Alerts         []string
}

type taskRow struct {
	Name string
	Age  string
}

type doneRow struct {
	Name string
	Time string
}

var tmpl = template.Must(template.New("dashboard").Parse(`---
last_updated: "{{.Updated}}"
auto_generated: true
---

# Vault Dashboard

> Last updated: {{.Updated}}
> Mode: {{.Mode}}

## Overview

| Metric | Count |
|--------|-------|
| Inbox | {{.InboxCount}} |
| Needs Action | {{.PendingCount}} |
| Plans | {{.PlanCount}} |
| Pending Approval | {{.ApprovalCount}} |
| Approved | {{.ApprovedCount}} |
| Rejected | {{.RejectedCount}} |
| Completed Today | {{.DoneTodayCount}} |
| Total Done | {{.DoneCount}} |

## Pending Tasks

| File | Age |
|------|-----|
{{- if .Pending}}
{{- range .Pending}}
| ` + "`{{.Name}}`" + ` | {{.Age}} |
{{- end}}
{{- else}}
| - | - |
{{- end}}

## Completed Today

| File | Time |
|------|------|
{{- if .DoneToday}}
{{- range .DoneToday}}
| ` + "`{{.Name}}`" + ` | {{.Time}} |
{{- end}}
{{- else}}
| - | - |
{{- end}}

## Alerts

{{- if .Alerts}}
{{range .Alerts}}- {{.}}
{{end -}}
{{- else}}
- No active alerts
{{- end}}
`))

// Refresh recomputes the snapshot and rewrites Dashboard.md.
func (w *Writer) Refresh() error {
	now := w.clock.Now()
	dirs := w.store.Dirs()

	inbox := w.store.List(dirs.Inbox)
	needsAction := w.store.List(dirs.NeedsAction)
	plans := w.store.ListExt(dirs.Plans, ".md")
	approval := w.store.List(dirs.PendingApproval)
	approved := w.store.List(dirs.Approved)
	rejected := w.store.List(dirs.Rejected)
	done := w.store.List(dirs.Done)

	pending := taskFiles(needsAction)

	var doneToday []vault.Entry
	for _, e := range done {
		if sameDay(e.Modified, now) {
			doneToday = append(doneToday, e)
		}
	}

	snap := snapshot{
		Updated:        now.Format("2006-01-02 15:04:05"),
		Mode:           "active",
		InboxCount:     len(inbox),
		PendingCount:   len(pending),
		PlanCount:      len(plans),
		ApprovalCount:  len(approval),
		ApprovedCount:  len(approved),
		RejectedCount:  len(rejected),
		DoneCount:      len(done),
		DoneTodayCount: len(doneToday),
	}
	if w.store.DryRun() {
		snap.Mode = "dry-run"
	}

	for _, e := range capEntries(pending, w.cfg.Recent) {
		snap.Pending = append(snap.Pending, taskRow{
			Name: e.Name,
			Age:  fmt.Sprintf("%dm ago", int(now.Sub(e.Modified).Minutes())),
		})
	}
	for _, e := range capEntries(doneToday, w.cfg.Recent) {
		snap.DoneToday = append(snap.DoneToday, doneRow{
			Name: e.Name,
			Time: e.Modified.Format("15:04"),
		})
	}

	if len(pending) > w.cfg.Alerts.QueueDepth {
		snap.Alerts = append(snap.Alerts,
			fmt.Sprintf("High load: %d items awaiting action", len(pending)))
	}
	if len(approval) > 0 {
		snap.Alerts = append(snap.Alerts,
			fmt.Sprintf("Approval needed: %d item(s) in Pending_Approval/", len(approval)))
	}
	if len(inbox) > w.cfg.Alerts.InboxBacklog {
		snap.Alerts = append(snap.Alerts,
			fmt.Sprintf("Inbox filling: %d items unprocessed", len(inbox)))
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, snap); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	if !w.store.Write(dirs.DashboardPath(), out.String(), true) {
		return fmt.Errorf("write dashboard: %s", dirs.DashboardPath())
	}
	w.logger.Debug("dashboard", "refreshed")
	return nil
}

// taskFiles filters a Needs_Action listing down to working task copies:
// everything that is not a metadata note or other markdown.
func taskFiles(entries []vault.Entry) []vault.Entry {
	var tasks []vault.Entry
	for _, e := range entries {
		if domain.IsMetaNote(e.Name) || strings.HasSuffix(strings.ToLower(e.Name), ".md") {
			continue
		}
		tasks = append(tasks, e)
	}
	return tasks
}

func capEntries(entries []vault.Entry, limit int) []vault.Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
