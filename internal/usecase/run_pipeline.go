package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/runoshun/vaultpipe/internal/domain"
	"github.com/runoshun/vaultpipe/internal/infra/vault"
)

// RunPipelineOutput summarizes one full pass over Needs_Action.
type RunPipelineOutput struct {
	Report domain.RunReport
}

// RunPipeline drives every pending task through classify, plan, and
// route-or-complete, then refreshes the dashboard. Tasks are processed
// sequentially with per-task fault isolation: one failing task never
// aborts the pass. The only hard failure is Needs_Action itself being
// unreadable.
// Fields are ordered to minimize memory padding.
type RunPipeline struct {
	store      *vault.Store
	classifier domain.Classifier
	plans      domain.PlanRenderer
	mover      domain.Mover
	catalog    domain.Catalog
	dashboard  domain.DashboardWriter
	snapshots  domain.Snapshotter // nil when snapshots are disabled
	metas      domain.MetaReader
	clock      domain.Clock
	logger     domain.Logger
	cfg        *domain.Config
}

// NewRunPipeline creates a new RunPipeline use case. snapshots may be nil.
func NewRunPipeline(
	store *vault.Store,
	classifier domain.Classifier,
	plans domain.PlanRenderer,
	mover domain.Mover,
	catalog domain.Catalog,
	dashboard domain.DashboardWriter,
	snapshots domain.Snapshotter,
	metas domain.MetaReader,
	cfg *domain.Config,
	clock domain.Clock,
	logger domain.Logger,
) *RunPipeline {
	return &RunPipeline{
		store:      store,
		classifier: classifier,
		plans:      plans,
		mover:      mover,
		catalog:    catalog,
		dashboard:  dashboard,
		snapshots:  snapshots,
		metas:      metas,
		cfg:        cfg,
		clock:      clock,
		logger:     logger,
	}
}

// Execute runs one orchestrator pass.
func (uc *RunPipeline) Execute(_ context.Context) (*RunPipelineOutput, error) {
	if err := requireInitialized(uc.store); err != nil {
		return nil, err
	}

	entries, err := uc.store.ListChecked(uc.store.Dirs().NeedsAction)
	if err != nil {
		return nil, err
	}
	tasks := pendingTasks(entries, uc.metas)

	var report domain.RunReport
	for _, task := range tasks {
		report.Processed++
		if err := uc.processTask(task, &report); err != nil {
			report.Errors++
			uc.logger.Error("pipeline", fmt.Sprintf("task %s: %v", task.Name, err))
		}
	}

	// The dashboard reflects whatever state the pass left behind, even a
	// pass full of errors.
	if err := uc.dashboard.Refresh(); err != nil {
		uc.logger.Error("pipeline", fmt.Sprintf("dashboard refresh: %v", err))
	}

	if uc.cfg.Snapshot.Enabled && uc.snapshots != nil {
		msg := "vault snapshot " + uc.clock.Now().Format("2006-01-02 15:04:05")
		if err := uc.snapshots.Commit(msg); err != nil {
			uc.logger.Error("pipeline", fmt.Sprintf("snapshot: %v", err))
		}
	}

	uc.logger.Info("pipeline", fmt.Sprintf(
		"pass done: processed=%d plans=%d completed=%d approval=%d errors=%d",
		report.Processed, report.PlansCreated, report.Completed,
		report.RoutedForApproval, report.Errors))
	return &RunPipelineOutput{Report: report}, nil
}

func (uc *RunPipeline) processTask(task domain.Task, report *domain.RunReport) error {
	c, err := uc.classify(task)
	if err != nil {
		return err
	}

	now := uc.clock.Now()
	content, err := uc.plans.Render(task, c, now)
	if err != nil {
		return fmt.Errorf("render plan: %w", err)
	}

	dirs := uc.store.Dirs()
	planName := domain.PlanName(now, task.Stem)
	planPath := filepath.Join(dirs.Plans, planName)
	if !uc.store.Write(planPath, content, false) {
		return fmt.Errorf("persist plan %s", planName)
	}
	report.PlansCreated++

	if c.RequiresApproval {
		return uc.routeForApproval(task, planPath, report)
	}
	return uc.complete(task, c, now, report)
}

// classify guards the replaceable classifier implementation: a panicking
// classifier skips the task instead of killing the pass.
func (uc *RunPipeline) classify(task domain.Task) (c domain.Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier panicked: %v", r)
		}
	}()
	return uc.classifier.Classify(task), nil
}

// routeForApproval copies the plan, the metadata note, and the working
// task file into Pending_Approval. The Needs_Action copy stays until a
// human disposition occurs; no terminal state exists for the task yet.
func (uc *RunPipeline) routeForApproval(task domain.Task, planPath string, report *domain.RunReport) error {
	dirs := uc.store.Dirs()
	if _, err := uc.mover.Copy(planPath, dirs.PendingApproval, ""); err != nil {
		return fmt.Errorf("route plan for approval: %w", err)
	}
	if task.HasMeta() {
		if _, err := uc.mover.Copy(task.MetaPath, dirs.PendingApproval, ""); err != nil {
			return fmt.Errorf("route meta for approval: %w", err)
		}
	}
	if _, err := uc.mover.Copy(task.Path, dirs.PendingApproval, ""); err != nil {
		return fmt.Errorf("route task for approval: %w", err)
	}
	report.RoutedForApproval++
	uc.logger.Info("pipeline", fmt.Sprintf("%s routed for approval", task.Name))
	return nil
}

// complete records the audit entry, then archives the task and its
// metadata note into Done.
func (uc *RunPipeline) complete(task domain.Task, c domain.Classification, now time.Time, report *domain.RunReport) error {
	entry := domain.CatalogEntry{
		Timestamp: now.Format(time.RFC3339),
		File:      task.Name,
		Type:      string(c.Type),
		Action:    c.Action,
		Priority:  string(c.Priority),
		Tier:      uc.cfg.Tier,
		Status:    domain.StatusCompleted,
		DryRun:    uc.cfg.DryRun,
	}
	if err := uc.catalog.Append(entry); err != nil {
		return fmt.Errorf("append catalog entry: %w", err)
	}

	dirs := uc.store.Dirs()
	if _, err := uc.mover.Move(task.Path, dirs.Done, ""); err != nil {
		return fmt.Errorf("archive task: %w", err)
	}
	if task.HasMeta() {
		if _, err := uc.mover.Move(task.MetaPath, dirs.Done, ""); err != nil {
			return fmt.Errorf("archive meta: %w", err)
		}
	}
	report.Completed++
	uc.logger.Info("pipeline", fmt.Sprintf("%s completed (%s)", task.Name, c.Action))
	return nil
}
