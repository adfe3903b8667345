package gitops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docpush/internal/logfields"
	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Pusher force-updates a single branch reference on a remote, overwriting
// whatever currently exists there.
type Pusher interface {
	Push(ctx context.Context, dir, remoteURL, branch, token string) error
}

// GoGitPusher pushes with go-git over an anonymous remote, so the snapshot
// repository never needs a configured origin.
type GoGitPusher struct{}

func (GoGitPusher) Push(ctx context.Context, dir, remoteURL, branch, token string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open snapshot repository: %w", err)
	}

	refspec := gitcfg.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/heads/%s", branch, branch))
	remote := git.NewRemote(repo.Storer, &gitcfg.RemoteConfig{
		Name: "anonymous",
		URLs: []string{remoteURL},
	})

	options := &git.PushOptions{
		RemoteName: "anonymous",
		RefSpecs:   []gitcfg.RefSpec{refspec},
		Force:      true,
	}
	if token != "" {
		// Forges accept the literal username "token" with a token password.
		options.Auth = &http.BasicAuth{Username: "token", Password: token}
	}

	slog.Info("Force-pushing snapshot branch",
		logfields.URL(RedactURL(remoteURL)),
		logfields.Branch(branch))

	err = remote.PushContext(ctx, options)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		slog.Info("Remote branch already up to date", logfields.Branch(branch))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branch, RedactURL(remoteURL), err)
	}
	return nil
}
