package source

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/codescope-dev/codescope/pkg/analysis"
	scanerrors "github.com/codescope-dev/codescope/pkg/shared/errors"
)

// CollectArchive downloads a gzipped tarball (the snapshot format GitHub,
// GitLab and Bitbucket all serve) and expands it in memory into file
// records. The leading path component of each entry is stripped, matching
// the "<repo>-<ref>/" prefix those snapshots carry.
func CollectArchive(ctx context.Context, client *resty.Client, url string, opts Options, logger hclog.Logger) ([]analysis.FileRecord, error) {
	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, scanerrors.NewSourceError("archive", url, err)
	}
	if !resp.IsSuccess() {
		return nil, scanerrors.NewSourceError("archive", url, fmt.Errorf("unexpected status %s", resp.Status()))
	}

	records, err := expandTarGz(resp.Body(), opts, logger)
	if err != nil {
		return nil, scanerrors.NewSourceError("archive", url, err)
	}

	logger.Debug("collected files from archive", "url", url, "files", len(records))
	return records, nil
}

func expandTarGz(data []byte, opts Options, logger hclog.Logger) ([]analysis.FileRecord, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	records := []analysis.FileRecord{}
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		if len(records) >= opts.maxFiles() {
			logger.Warn("file cap reached, remaining files skipped", "cap", opts.maxFiles())
			break
		}

		relPath := stripTopDir(header.Name)
		if relPath == "" {
			continue
		}
		name := path.Base(relPath)
		if strings.HasPrefix(name, ".") || !opts.allows(name, header.Size) {
			continue
		}

		content, err := io.ReadAll(io.LimitReader(tr, opts.maxFileSize()+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", header.Name, err)
		}
		if int64(len(content)) > opts.maxFileSize() || !isTextContent(content) {
			logger.Debug("skipping oversized or binary file", "path", relPath)
			continue
		}

		records = append(records, analysis.FileRecord{
			Name:    name,
			Path:    relPath,
			Content: string(content),
		})
	}
	return records, nil
}

// stripTopDir removes the single leading path element of a tar entry name.
func stripTopDir(name string) string {
	name = strings.TrimPrefix(path.Clean(name), "/")
	if idx := strings.Index(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return ""
}
