package source

import (
	"fmt"
	"path"

	"github.com/hashicorp/go-hclog"
	gitlab "github.com/xanzy/go-gitlab"

	"github.com/codescope-dev/codescope/pkg/analysis"
	scanerrors "github.com/codescope-dev/codescope/pkg/shared/errors"
)

// GitLabSource collects a project's files through the GitLab repository
// tree API, fetching raw file contents entry by entry.
type GitLabSource struct {
	client  *gitlab.Client
	project string
	ref     string
	opts    Options
	logger  hclog.Logger
}

// NewGitLabSource creates a source for a project ("group/project" or a
// numeric id) at ref. baseURL selects a self-hosted instance; empty means
// gitlab.com. An empty ref resolves to the project's default branch.
func NewGitLabSource(baseURL, token, project, ref string, opts Options, logger hclog.Logger) (*GitLabSource, error) {
	var clientOpts []gitlab.ClientOptionFunc
	if baseURL != "" {
		clientOpts = append(clientOpts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}

	return &GitLabSource{
		client:  client,
		project: project,
		ref:     ref,
		opts:    opts,
		logger:  logger,
	}, nil
}

// Collect lists the tree page by page and fetches raw contents.
func (s *GitLabSource) Collect() ([]analysis.FileRecord, error) {
	listOpts := &gitlab.ListTreeOptions{
		Recursive:   gitlab.Bool(true),
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	if s.ref != "" {
		listOpts.Ref = gitlab.String(s.ref)
	}

	var rawOpts *gitlab.GetRawFileOptions
	if s.ref != "" {
		rawOpts = &gitlab.GetRawFileOptions{Ref: gitlab.String(s.ref)}
	}

	records := []analysis.FileRecord{}
	for {
		nodes, resp, err := s.client.Repositories.ListTree(s.project, listOpts)
		if err != nil {
			return nil, scanerrors.NewSourceError("gitlab", s.project, fmt.Errorf("failed to list tree: %w", err))
		}

		for _, node := range nodes {
			if node.Type != "blob" {
				continue
			}
			if len(records) >= s.opts.maxFiles() {
				s.logger.Warn("file cap reached, remaining files skipped", "cap", s.opts.maxFiles())
				return records, nil
			}

			name := path.Base(node.Path)
			// the tree API reports no sizes, so the size cap is
			// enforced after the fetch
			if !s.opts.allows(name, 0) {
				continue
			}

			content, _, err := s.client.RepositoryFiles.GetRawFile(s.project, node.Path, rawOpts)
			if err != nil {
				s.logger.Error("failed to fetch raw file, skipping", "path", node.Path, "error", err)
				continue
			}
			if int64(len(content)) > s.opts.maxFileSize() || !isTextContent(content) {
				s.logger.Debug("skipping oversized or binary file", "path", node.Path)
				continue
			}

			records = append(records, analysis.FileRecord{
				Name:    name,
				Path:    node.Path,
				Content: string(content),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	s.logger.Debug("collected files from gitlab", "project", s.project, "files", len(records))
	return records, nil
}
