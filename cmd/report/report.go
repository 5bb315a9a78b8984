package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/render"
	"github.com/codescope-dev/codescope/internal/report"
	"github.com/codescope-dev/codescope/internal/sarifreport"
	"github.com/codescope-dev/codescope/pkg/analysis"
	"github.com/codescope-dev/codescope/pkg/shared/cmdutil"
	"github.com/codescope-dev/codescope/pkg/shared/config"
	"github.com/codescope-dev/codescope/pkg/shared/files"
	"github.com/codescope-dev/codescope/pkg/shared/logger"
)

const (
	FormatSarif = "sarif"
	FormatHTML  = "html"
)

// RunOptionsReport holds the arguments for the report command.
type RunOptionsReport struct {
	ReportFormat string
	OutputPath   string
	Title        string
	TemplateFile string
	RuleFiles    []string
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	reportOptions      RunOptionsReport
	exampleReportUsage = `  # Rendering a saved JSON report as SARIF to stdout
  codescope report --format sarif results.json

  # Rendering a saved JSON report as an HTML page
  codescope report --format html --output report.html results.json

  # Rendering HTML with a custom title and template
  codescope report --format html --title "Release audit" --template custom.html --output report.html results.json`
)

// ReportCmd represents the report command.
var ReportCmd = &cobra.Command{
	Use:                   "report --format/-f sarif|html [--output/-o PATH] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleReportUsage,
	Short:                 "Re-renders a saved JSON report in another format",
	RunE:                  runReportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runReportCommand executes the report command.
func runReportCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmdutil.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-report")

	if err := validateReportArgs(&reportOptions, args); err != nil {
		logger.Error("invalid report arguments", "error", err)
		return err
	}

	envelope, err := report.ReadJSON(args[0])
	if err != nil {
		logger.Error("failed to read report", "error", err, "path", args[0])
		return err
	}

	switch reportOptions.ReportFormat {
	case FormatSarif:
		catalog, err := buildCatalog(AppConfig, reportOptions.RuleFiles)
		if err != nil {
			logger.Error("failed to load rule files", "error", err)
			return err
		}
		sarifReport, err := sarifreport.FromResult(envelope.Result, catalog)
		if err != nil {
			logger.Error("failed to convert report", "error", err)
			return err
		}
		if reportOptions.OutputPath == "-" {
			return sarifReport.PrettyWrite(os.Stdout)
		}
		if err := sarifreport.WriteFile(sarifReport, reportOptions.OutputPath); err != nil {
			logger.Error("failed to write SARIF report", "error", err)
			return err
		}

	case FormatHTML:
		var buf bytes.Buffer
		data := render.NewPageData(reportOptions.Title, envelope)
		if err := render.Render(&buf, data, reportOptions.TemplateFile); err != nil {
			logger.Error("failed to render report", "error", err)
			return err
		}
		if reportOptions.OutputPath == "-" {
			if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
				return err
			}
		} else if err := files.WriteFileAtomic(reportOptions.OutputPath, buf.Bytes()); err != nil {
			logger.Error("failed to write HTML report", "error", err)
			return err
		}
	}

	logger.Info("report command completed successfully", "format", reportOptions.ReportFormat)
	return nil
}

// buildCatalog merges the built-in rules with the configured rule files so
// SARIF descriptors keep their CWE annotations for custom rules.
func buildCatalog(cfg *config.Config, extraFiles []string) (*analysis.Catalog, error) {
	catalog := analysis.DefaultCatalog()

	ruleFiles := append([]string{}, cfg.Rules.Files...)
	ruleFiles = append(ruleFiles, extraFiles...)

	for _, ruleFile := range ruleFiles {
		rules, err := analysis.LoadRulesFile(ruleFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules from %q: %w", ruleFile, err)
		}
		catalog = catalog.Extend(rules)
	}
	return catalog, nil
}

func init() {
	ReportCmd.Flags().StringVarP(&reportOptions.ReportFormat, "format", "f", "", "Format to render (sarif, html).")
	ReportCmd.Flags().StringVarP(&reportOptions.OutputPath, "output", "o", "-", "Path to the output file. '-' writes to stdout.")
	ReportCmd.Flags().StringVar(&reportOptions.Title, "title", "Code Analysis Report", "Title for the HTML report.")
	ReportCmd.Flags().StringVar(&reportOptions.TemplateFile, "template", "", "Path to a custom HTML report template.")
	ReportCmd.Flags().StringSliceVar(&reportOptions.RuleFiles, "rules", nil, "Comma-separated list of YAML rule files merged after the built-in catalog.")
	ReportCmd.Flags().BoolP("help", "h", false, "Show help for the report command.")
}
