// Package snapshot records the vault tree into a local git repository so
// every pipeline pass leaves a recoverable audit point. The repository
// lives at the vault root; the pipeline never reads it back.
package snapshot

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Ensure Committer implements domain.Snapshotter.
var _ domain.Snapshotter = (*Committer)(nil)

// Committer commits vault state with go-git.
type Committer struct {
	logger domain.Logger
	clock  domain.Clock
	root   string
	dryRun bool
}

// New creates a Committer for the vault at root.
func New(root string, dryRun bool, clock domain.Clock, logger domain.Logger) *Committer {
	return &Committer{root: root, dryRun: dryRun, clock: clock, logger: logger}
}

// Commit stages the whole vault and commits it. The repository is created
// on first use; a clean tree is a successful no-op.
func (c *Committer) Commit(message string) error {
	if c.dryRun {
		c.logger.Info("snapshot", fmt.Sprintf("[dry-run] would commit: %s", message))
		return nil
	}

	repo, err := c.openOrInit()
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage vault: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("vault status: %w", err)
	}
	if status.IsClean() {
		c.logger.Debug("snapshot", "tree clean, nothing to commit")
		return nil
	}

	now := c.clock.Now()
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "vaultpipe",
			Email: "vaultpipe@localhost",
			When:  now,
		},
	})
	if err != nil {
		return fmt.Errorf("commit vault: %w", err)
	}
	c.logger.Info("snapshot", fmt.Sprintf("committed: %s", message))
	return nil
}

func (c *Committer) openOrInit() (*git.Repository, error) {
	repo, err := git.PlainOpen(c.root)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("open vault repository: %w", err)
	}
	repo, err = git.PlainInit(c.root, false)
	if err != nil {
		return nil, fmt.Errorf("init vault repository: %w", err)
	}
	return repo, nil
}
