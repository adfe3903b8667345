// Package gitops turns a documentation output directory into a fresh
// single-commit branch snapshot and force-pushes that branch to the hosting
// remote, using go-git throughout.
package gitops

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docpush/internal/logfields"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Importer commits a directory's contents as a fresh snapshot onto a
// designated branch, discarding prior history.
//
// Ensure verifies the importer is usable and performs any one-time setup;
// it must be idempotent (ensuring an already-available importer succeeds).
type Importer interface {
	Ensure(ctx context.Context) error
	Import(ctx context.Context, dir, branch string) (string, error)
}

// GoGitImporter snapshots directories natively with go-git. No external tool
// is involved, so Ensure has nothing to install.
type GoGitImporter struct {
	CommitMessage string
	AuthorName    string
	AuthorEmail   string
}

// Ensure reports the importer ready. Kept as an explicit step so exec-based
// importer implementations retain their install-if-absent semantics.
func (i *GoGitImporter) Ensure(ctx context.Context) error { return nil }

// Import initializes a throwaway repository inside dir and commits everything
// in it as a single parentless commit on branch. Any repository left behind
// by a previous run is discarded first, so the result is always a one-commit
// history whose tree mirrors the directory contents.
func (i *GoGitImporter) Import(ctx context.Context, dir, branch string) (string, error) {
	if stat, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("import directory missing: %w", err)
	} else if !stat.IsDir() {
		return "", fmt.Errorf("import path %s is not a directory", dir)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.RemoveAll(filepath.Join(dir, git.GitDirName)); err != nil {
		return "", fmt.Errorf("failed to discard previous snapshot repository: %w", err)
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return "", fmt.Errorf("failed to init snapshot repository: %w", err)
	}

	// Point HEAD at the target branch before committing, so the snapshot
	// commit lands directly on it.
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	if err := repo.Storer.SetReference(head); err != nil {
		return "", fmt.Errorf("failed to set HEAD to %s: %w", branch, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("failed to stage directory contents: %w", err)
	}

	message := i.CommitMessage
	if message == "" {
		message = "Update documentation"
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  i.AuthorName,
			Email: i.AuthorEmail,
			When:  time.Now(),
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit snapshot: %w", err)
	}

	slog.Info("Directory imported as branch snapshot",
		logfields.Path(dir),
		logfields.Branch(branch),
		logfields.Commit(hash.String()[:8]))
	return hash.String(), nil
}
