package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gitsight/go-vcsurl"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/codescope-dev/codescope/pkg/shared/config"
	"github.com/codescope-dev/codescope/pkg/shared/files"
)

// TargetFolder derives the clone destination under the projects home from
// the repository URL: <projects>/<host>/<namespace>/<name>.
func TargetFolder(cloneURL string) (string, error) {
	info, err := vcsurl.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse VCS URL %q: %w", cloneURL, err)
	}

	return filepath.Join(
		config.GetProjectsHome(),
		strings.ToLower(string(info.Host)),
		filepath.FromSlash(strings.ToLower(info.FullName)),
	), nil
}

// Clone fetches a repository into targetFolder and returns the folder. An
// empty branch clones the remote default. When the folder already holds a
// repository it is opened and the requested branch checked out instead of
// re-cloning.
func (c *Client) Clone(cloneURL, branch, targetFolder string) (string, error) {
	if err := files.CreateFolderIfNotExists(filepath.Dir(targetFolder)); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	options := &git.CloneOptions{
		Auth:            c.auth,
		URL:             cloneURL,
		Depth:           config.SetThen(c.globalConfig.GitClient.Depth, 1),
		InsecureSkipTLS: config.GetBoolValue(c.globalConfig.GitClient.InsecureTLS, false),
	}
	if branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(branch)
		options.SingleBranch = true
	}

	c.logger.Debug("starting repository clone", "cloneURL", cloneURL, "branch", branch, "targetFolder", targetFolder)
	repo, err := git.PlainCloneContext(ctx, targetFolder, false, options)
	if err != nil {
		if err != git.ErrRepositoryAlreadyExists {
			c.logger.Error("error occurred during clone", "error", err, "targetFolder", targetFolder)
			return "", fmt.Errorf("error occurred during clone: %w", err)
		}

		c.logger.Info("repository already exists, reusing", "targetFolder", targetFolder)
		repo, err = git.PlainOpen(targetFolder)
		if err != nil {
			return "", fmt.Errorf("cannot open existing repository: %w", err)
		}
		if branch != "" {
			if err := checkoutBranch(repo, branch); err != nil {
				return "", err
			}
		}
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("cannot resolve HEAD after clone: %w", err)
	}
	c.logger.Info("repository ready", "targetFolder", targetFolder, "ref", head.Name().Short(), "commit", head.Hash().String())

	return targetFolder, nil
}

func checkoutBranch(repo *git.Repository, branch string) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("cannot open worktree: %w", err)
	}

	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Force:  true,
	})
	if err != nil {
		return fmt.Errorf("cannot checkout branch %q: %w", branch, err)
	}
	return nil
}
