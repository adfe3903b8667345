package gitops

import (
	"context"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initBareRemote creates a local bare repository to act as the push target.
func initBareRemote(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, true)
	require.NoError(t, err)
	return dir
}

func TestPushSnapshotToRemote(t *testing.T) {
	work := t.TempDir()
	writeFiles(t, work, map[string]string{"index.html": "v1"})
	hash, err := newImporter().Import(context.Background(), work, "gh-pages")
	require.NoError(t, err)

	remoteDir := initBareRemote(t)
	require.NoError(t, GoGitPusher{}.Push(context.Background(), work, remoteDir, "gh-pages", ""))

	remote, err := git.PlainOpen(remoteDir)
	require.NoError(t, err)
	ref, err := remote.Reference(plumbing.NewBranchReferenceName("gh-pages"), true)
	require.NoError(t, err)
	assert.Equal(t, hash, ref.Hash().String())
}

func TestPushIsForced(t *testing.T) {
	remoteDir := initBareRemote(t)

	work := t.TempDir()
	writeFiles(t, work, map[string]string{"index.html": "v1"})
	_, err := newImporter().Import(context.Background(), work, "gh-pages")
	require.NoError(t, err)
	require.NoError(t, GoGitPusher{}.Push(context.Background(), work, remoteDir, "gh-pages", ""))

	// Second snapshot shares no history with the first; only a forced update
	// can replace the remote ref.
	writeFiles(t, work, map[string]string{"index.html": "v2"})
	second, err := newImporter().Import(context.Background(), work, "gh-pages")
	require.NoError(t, err)
	require.NoError(t, GoGitPusher{}.Push(context.Background(), work, remoteDir, "gh-pages", ""))

	remote, err := git.PlainOpen(remoteDir)
	require.NoError(t, err)
	ref, err := remote.Reference(plumbing.NewBranchReferenceName("gh-pages"), true)
	require.NoError(t, err)
	assert.Equal(t, second, ref.Hash().String())
}

func TestPushAlreadyUpToDateIsSuccess(t *testing.T) {
	remoteDir := initBareRemote(t)

	work := t.TempDir()
	writeFiles(t, work, map[string]string{"index.html": "v1"})
	_, err := newImporter().Import(context.Background(), work, "gh-pages")
	require.NoError(t, err)

	require.NoError(t, GoGitPusher{}.Push(context.Background(), work, remoteDir, "gh-pages", ""))
	require.NoError(t, GoGitPusher{}.Push(context.Background(), work, remoteDir, "gh-pages", ""))
}

func TestPushWithoutSnapshotRepository(t *testing.T) {
	err := GoGitPusher{}.Push(context.Background(), t.TempDir(), initBareRemote(t), "gh-pages", "")
	require.Error(t, err)
}

func TestRemoteURL(t *testing.T) {
	assert.Equal(t, "https://github.com/i30817/scinotation.git", RemoteURL("github.com", "i30817/scinotation"))
}

func TestRedactURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"token in userinfo", "https://s3cret@github.com/o/p.git", "https://REDACTED@github.com/o/p.git"},
		{"user and password", "https://alice:pw@github.com/o/p.git", "https://REDACTED@github.com/o/p.git"},
		{"no userinfo", "https://github.com/o/p.git", "https://github.com/o/p.git"},
		{"local path", "/tmp/remote", "/tmp/remote"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RedactURL(tc.in))
		})
	}
}
