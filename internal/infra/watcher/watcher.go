// Package watcher reacts to filesystem events on the vault inbox. It is
// deliberately thin: event filtering and file-settle waiting live here,
// while the actual pipeline work is injected as hooks.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Hooks are the callbacks the watcher invokes for inbox activity.
// A nil hook disables that event class.
type Hooks struct {
	// Created fires after a new inbox file has settled. path is absolute.
	Created func(ctx context.Context, path string) error

	// Removed fires when a non-ignored inbox file disappears. name is the
	// bare filename, not a path.
	Removed func(ctx context.Context, name string) error
}

// Watcher watches a single inbox directory with fsnotify.
type Watcher struct {
	logger domain.Logger
	hooks  Hooks
	inbox  string
	settle domain.SettleConfig
}

// New creates a Watcher for the given inbox directory.
func New(inbox string, settle domain.SettleConfig, hooks Hooks, logger domain.Logger) *Watcher {
	return &Watcher{inbox: inbox, settle: settle, hooks: hooks, logger: logger}
}

var junkNames = map[string]struct{}{
	".DS_Store":  {},
	"Thumbs.db":  {},
	".gitkeep":   {},
	".gitignore": {},
}

var tempExtensions = map[string]struct{}{
	".tmp":        {},
	".part":       {},
	".crdownload": {},
	".swp":        {},
}

// Ignored reports whether an inbox filename should never trigger the
// pipeline: hidden files, editor/OS droppings, partial downloads, and
// metadata notes.
func Ignored(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return true
	}
	if _, ok := junkNames[name]; ok {
		return true
	}
	if _, ok := tempExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return true
	}
	return strings.HasSuffix(name, domain.MetaNoteSuffix)
}

// Run blocks processing inbox events until ctx is cancelled or the
// underlying watcher fails. Hooks run synchronously on the event loop, so
// a cancelled ctx never abandons an in-flight handler.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create inbox watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.inbox); err != nil {
		return fmt.Errorf("watch %s: %w", w.inbox, err)
	}
	w.logger.Info("watcher", fmt.Sprintf("watching %s", w.inbox))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher", "stopping")
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return domain.ErrWatcherClosed
			}
			w.handle(ctx, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return domain.ErrWatcherClosed
			}
			w.logger.Warn("watcher", fmt.Sprintf("watch error: %v", err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if Ignored(name) {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		if w.hooks.Created == nil {
			return
		}
		if err := w.handleCreate(ctx, event.Name); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("watcher", fmt.Sprintf("handle %s: %v", name, err))
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if w.hooks.Removed == nil {
			return
		}
		if err := w.hooks.Removed(ctx, name); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("watcher", fmt.Sprintf("rollback %s: %v", name, err))
		}
	}
}

func (w *Watcher) handleCreate(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		// Already gone; nothing to ingest.
		return nil
	}
	if info.IsDir() {
		return nil
	}

	switch err := w.waitForSettle(ctx, path); {
	case errors.Is(err, errVanished):
		w.logger.Debug("watcher", fmt.Sprintf("%s vanished before settling", filepath.Base(path)))
		return nil
	case err != nil:
		return err
	}

	return w.hooks.Created(ctx, path)
}

var (
	errVanished      = errors.New("file vanished")
	errStillChanging = errors.New("file size still changing")
)

// waitForSettle polls the file size at a constant interval until two
// consecutive reads agree. Hitting the settle timeout is not an error;
// the file is ingested as-is.
func (w *Watcher) waitForSettle(ctx context.Context, path string) error {
	var last int64 = -1
	op := func() error {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return backoff.Permanent(errVanished)
			}
			return backoff.Permanent(err)
		}
		if info.Size() == last {
			return nil
		}
		last = info.Size()
		return errStillChanging
	}

	// BackOff implementations are stateful; always build a fresh one.
	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(w.settle.Interval), w.maxPolls()),
		ctx,
	)
	err := backoff.Retry(op, bo)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStillChanging):
		w.logger.Warn("watcher", fmt.Sprintf("%s did not settle within %s, ingesting anyway", filepath.Base(path), w.settle.Timeout))
		return nil
	default:
		return err
	}
}

func (w *Watcher) maxPolls() uint64 {
	if w.settle.Interval <= 0 {
		return 0
	}
	n := w.settle.Timeout / w.settle.Interval
	if n < 1 {
		return 1
	}
	return uint64(n)
}
