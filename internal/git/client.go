// Package git syncs a content repository into the local content directory
// before a build.
package git

import (
	"errors"
	"log/slog"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
)

// Client handles git operations for the content repository.
type Client struct {
	dir string
}

// NewClient creates a client rooted at the content directory.
func NewClient(dir string) *Client {
	return &Client{dir: dir}
}

// Sync clones the repository into the content directory, or pulls when a
// checkout already exists there.
func (c *Client) Sync(url, branch string) error {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return c.clone(url, branch)
	}

	repo, err := gogit.PlainOpen(c.dir)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return pberrors.New(pberrors.CategoryGit, pberrors.SeverityFatal, "content directory exists but is not a git checkout").
				WithContext("dir", c.dir)
		}
		return pberrors.WrapError(err, pberrors.CategoryGit, "failed to open content repository").
			WithContext("dir", c.dir)
	}

	return c.pull(repo, branch)
}

func (c *Client) clone(url, branch string) error {
	slog.Info("Cloning content repository", "url", url, "branch", branch, logfields.Path(c.dir))

	opts := &gogit.CloneOptions{URL: url}
	if branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + branch)
		opts.SingleBranch = true
	}

	repo, err := gogit.PlainClone(c.dir, false, opts)
	if err != nil {
		return pberrors.CloneFailed(err, url)
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("Content repository cloned", "url", url, "commit", ref.Hash().String()[:8])
	}
	return nil
}

func (c *Client) pull(repo *gogit.Repository, branch string) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return pberrors.WrapError(err, pberrors.CategoryGit, "failed to open worktree").
			WithContext("dir", c.dir)
	}

	opts := &gogit.PullOptions{}
	if branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + branch)
		opts.SingleBranch = true
	}

	err = worktree.Pull(opts)
	switch {
	case err == nil:
		slog.Info("Content repository updated", logfields.Path(c.dir))
		return nil
	case errors.Is(err, gogit.NoErrAlreadyUpToDate):
		slog.Debug("Content repository already up to date", logfields.Path(c.dir))
		return nil
	default:
		return pberrors.WrapError(err, pberrors.CategoryGit, "failed to pull content repository").
			WithContext("dir", c.dir)
	}
}
