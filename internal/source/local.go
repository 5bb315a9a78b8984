package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codescope-dev/codescope/pkg/analysis"
	scanerrors "github.com/codescope-dev/codescope/pkg/shared/errors"
)

// errFileCapReached stops the walk early once the file cap is hit.
var errFileCapReached = errors.New("file cap reached")

// CollectDir walks a directory tree and returns the files that pass the
// filters, with paths relative to the root in forward-slash form. Dot
// directories (.git and friends) are skipped entirely.
func CollectDir(root string, opts Options, logger hclog.Logger) ([]analysis.FileRecord, error) {
	records := []analysis.FileRecord{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		if len(records) >= opts.maxFiles() {
			logger.Warn("file cap reached, remaining files skipped", "cap", opts.maxFiles())
			return errFileCapReached
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !opts.allows(d.Name(), info.Size()) {
			logger.Debug("skipping filtered file", "path", path, "size", info.Size())
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !isTextContent(data) {
			logger.Debug("skipping binary file", "path", path)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		// a file root yields ".", keep the file name instead
		if rel == "." {
			rel = d.Name()
		}

		records = append(records, analysis.FileRecord{
			Name:    d.Name(),
			Path:    filepath.ToSlash(rel),
			Content: string(data),
		})
		return nil
	})
	if err != nil && !errors.Is(err, errFileCapReached) {
		return nil, scanerrors.NewSourceError("dir", root, err)
	}

	logger.Debug("collected local files", "root", root, "files", len(records))
	return records, nil
}
