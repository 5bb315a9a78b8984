package report

import (
	"fmt"

	"github.com/codescope-dev/codescope/pkg/shared/files"
)

// validateReportArgs validates the arguments provided to the report command.
func validateReportArgs(options *RunOptionsReport, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a path to a saved JSON report must be specified")
	}
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	if options.ReportFormat != FormatSarif && options.ReportFormat != FormatHTML {
		return fmt.Errorf("unknown report format: %v", options.ReportFormat)
	}

	if options.TemplateFile != "" && options.ReportFormat != FormatHTML {
		return fmt.Errorf("the 'template' flag is only valid with the html format")
	}

	expandedPath, err := files.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", args[0], err)
	}
	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
	}
	args[0] = expandedPath

	return nil
}
