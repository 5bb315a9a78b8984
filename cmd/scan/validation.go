package scan

import (
	"fmt"
	"os"
	"strings"

	"github.com/codescope-dev/codescope/pkg/shared/files"
)

const (
	FormatJSON  = "json"
	FormatSarif = "sarif"
	FormatHTML  = "html"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(options *RunOptionsScan, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	if options.GitLabURL != "" && options.GitLabRepo == "" {
		return fmt.Errorf("the 'gitlab-url' flag requires the 'gitlab' flag")
	}

	remoteModes := 0
	for _, selected := range []string{options.GitHubRepo, options.GitLabRepo, options.ArchiveURL} {
		if selected != "" {
			remoteModes++
		}
	}
	if remoteModes > 1 {
		return fmt.Errorf("the 'github', 'gitlab' and 'archive-url' flags are mutually exclusive")
	}
	if remoteModes == 1 && len(args) != 0 {
		return fmt.Errorf("a local path cannot be combined with a remote target flag")
	}
	if remoteModes == 0 && len(args) == 0 {
		return fmt.Errorf("either a local path or one of 'github', 'gitlab', 'archive-url' must be specified")
	}

	if options.GitHubRepo != "" && !strings.Contains(options.GitHubRepo, "/") {
		return fmt.Errorf("the 'github' flag must be in OWNER/REPO form: %v", options.GitHubRepo)
	}

	if len(args) == 1 {
		expandedPath, err := files.ExpandPath(args[0])
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", args[0], err)
		}
		// the scan target may be a directory or a single file
		if _, err := os.Stat(expandedPath); err != nil {
			return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
		}
		args[0] = expandedPath
	}

	formatList := []string{FormatJSON, FormatSarif, FormatHTML}
	if !isInList(options.ReportFormat, formatList) {
		return fmt.Errorf("unknown report format: %v", options.ReportFormat)
	}

	if options.TemplateFile != "" && options.ReportFormat != FormatHTML {
		return fmt.Errorf("the 'template' flag is only valid with the html format")
	}

	if options.FailOn != "" && severityRank(options.FailOn) == 0 {
		return fmt.Errorf("unknown fail-on severity: %v", options.FailOn)
	}

	if options.Jobs < 0 {
		return fmt.Errorf("the 'jobs' flag must not be negative")
	}

	return nil
}

func isInList(value string, list []string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
