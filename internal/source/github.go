package source

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"

	"github.com/codescope-dev/codescope/pkg/analysis"
	scanerrors "github.com/codescope-dev/codescope/pkg/shared/errors"
)

// GitHubSource collects a repository's files through the GitHub tree API:
// one recursive tree listing, then per-blob content retrieval for every
// entry that passes the filters.
type GitHubSource struct {
	client *github.Client
	owner  string
	repo   string
	ref    string
	opts   Options
	logger hclog.Logger
}

// NewGitHubSource creates a source for owner/repo at ref. An empty ref
// resolves to the repository's default branch. The token is optional;
// without it the shared unauthenticated rate limit applies.
func NewGitHubSource(token, owner, repo, ref string, opts Options, logger hclog.Logger) *GitHubSource {
	var httpClient *http.Client
	if token != "" {
		transport := &github.BasicAuthTransport{Username: "token", Password: token}
		httpClient = transport.Client()
	}
	return &GitHubSource{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
		ref:    ref,
		opts:   opts,
		logger: logger,
	}
}

// Collect lists the tree and fetches blob contents.
func (s *GitHubSource) Collect(ctx context.Context) ([]analysis.FileRecord, error) {
	target := fmt.Sprintf("%s/%s", s.owner, s.repo)

	ref := s.ref
	if ref == "" {
		repo, _, err := s.client.Repositories.Get(ctx, s.owner, s.repo)
		if err != nil {
			return nil, scanerrors.NewSourceError("github", target, fmt.Errorf("failed to resolve default branch: %w", err))
		}
		ref = repo.GetDefaultBranch()
	}

	tree, _, err := s.client.Git.GetTree(ctx, s.owner, s.repo, ref, true)
	if err != nil {
		return nil, scanerrors.NewSourceError("github", target, fmt.Errorf("failed to list tree at %q: %w", ref, err))
	}
	if tree.GetTruncated() {
		s.logger.Warn("tree listing truncated by the API, some files will be missing", "repository", target)
	}

	records := []analysis.FileRecord{}
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		if len(records) >= s.opts.maxFiles() {
			s.logger.Warn("file cap reached, remaining files skipped", "cap", s.opts.maxFiles())
			break
		}

		name := path.Base(entry.GetPath())
		if !s.opts.allows(name, int64(entry.GetSize())) {
			continue
		}

		content, _, err := s.client.Git.GetBlobRaw(ctx, s.owner, s.repo, entry.GetSHA())
		if err != nil {
			s.logger.Error("failed to fetch blob, skipping file", "path", entry.GetPath(), "error", err)
			continue
		}
		if !isTextContent(content) {
			s.logger.Debug("skipping binary file", "path", entry.GetPath())
			continue
		}

		records = append(records, analysis.FileRecord{
			Name:    name,
			Path:    entry.GetPath(),
			Content: string(content),
		})
	}

	s.logger.Debug("collected files from github", "repository", target, "ref", ref, "files", len(records))
	return records, nil
}
