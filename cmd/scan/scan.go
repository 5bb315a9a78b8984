package scan

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/report"
	"github.com/codescope-dev/codescope/pkg/analysis"
	"github.com/codescope-dev/codescope/pkg/shared/cmdutil"
	"github.com/codescope-dev/codescope/pkg/shared/config"
	"github.com/codescope-dev/codescope/pkg/shared/errors"
	"github.com/codescope-dev/codescope/pkg/shared/logger"
)

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	GitHubRepo   string
	GitLabRepo   string
	GitLabURL    string
	ArchiveURL   string
	Ref          string
	ReportFormat string
	OutputPath   string
	Title        string
	TemplateFile string
	RuleFiles    []string
	FailOn       string
	Jobs         int
}

// Version is stamped by the root command so report envelopes carry the
// build version without importing the version package.
var Version = "unknown"

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	scanOptions      RunOptionsScan
	exampleScanUsage = `  # Scanning a local project directory and printing the JSON report to stdout
  codescope scan /path/to/my_project

  # Scanning a local directory and saving the report as SARIF
  codescope scan --format sarif --output report.sarif /path/to/my_project

  # Scanning a GitHub repository at a specific ref without cloning
  codescope scan --github octocat/hello-world -b main --output report.json

  # Scanning a GitLab project hosted on a self-managed instance
  codescope scan --gitlab mygroup/myproject --gitlab-url https://gitlab.example.com

  # Scanning a repository archive downloaded over HTTP
  codescope scan --archive-url https://github.com/octocat/hello-world/archive/refs/heads/main.tar.gz

  # Scanning with extra rule files and failing the process on high findings
  codescope scan --rules extra-rules.yml --fail-on high /path/to/my_project

  # Rendering an HTML report with a custom title using 4 concurrent jobs
  codescope scan --format html --title "Release audit" --output report.html -j 4 /path/to/my_project`
)

// ScanCmd represents the scan command.
var ScanCmd = &cobra.Command{
	Use:                   "scan [--format/-f json|sarif|html] [--output/-o PATH] [--rules PATH]... [--fail-on SEVERITY] [-j JOBS_NUMBER, default=1] {PATH | --github OWNER/REPO | --gitlab PROJECT | --archive-url URL}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Analyses source code with the built-in pattern catalog and heuristics",
	Long: `Analyses source code for security and quality issues using regex pattern
matching and structural heuristics, then aggregates per-file findings into a
project report with metrics, a security summary and estimated coverage.`,
	RunE: runScanCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runScanCommand executes the scan command.
func runScanCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmdutil.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-scan")

	if err := validateScanArgs(&scanOptions, args); err != nil {
		logger.Error("invalid scan arguments", "error", err)
		return err
	}

	catalog, err := buildCatalog(AppConfig, scanOptions.RuleFiles)
	if err != nil {
		logger.Error("failed to load rule files", "error", err)
		return err
	}

	ctx := context.Background()
	startedAt := time.Now().UTC()

	target, files, err := collectFiles(ctx, &scanOptions, args, logger)
	if err != nil {
		logger.Error("failed to collect files", "error", err)
		return err
	}
	logger.Info("collected files for analysis", "target", target, "files", len(files))

	analyzer := analysis.NewAnalyzer(analysis.Options{
		Catalog:           catalog,
		Estimator:         buildEstimator(AppConfig),
		Jobs:              jobCount(&scanOptions, AppConfig),
		FoldTestFileNames: AppConfig.Scan.FoldTestFileNames,
	}, logger)

	result := analyzer.AnalyzeFiles(files)

	envelope := report.New(Version, target, result, startedAt)

	if err := writeReport(envelope, catalog, &scanOptions, logger); err != nil {
		logger.Error("failed to write report", "error", err)
		return err
	}

	if scanOptions.FailOn != "" {
		count := countAtOrAbove(result, scanOptions.FailOn)
		if count > 0 {
			return errors.NewThresholdExceededError(scanOptions.FailOn, count)
		}
	}

	logger.Info("scan command completed successfully",
		"findings", len(result.Findings), "files", len(files))
	return nil
}

// Initialize flags for the scan command.
func init() {
	ScanCmd.Flags().StringVar(&scanOptions.GitHubRepo, "github", "", "GitHub repository to scan without cloning, in OWNER/REPO form.")
	ScanCmd.Flags().StringVar(&scanOptions.GitLabRepo, "gitlab", "", "GitLab project to scan without cloning, in GROUP/PROJECT form.")
	ScanCmd.Flags().StringVar(&scanOptions.GitLabURL, "gitlab-url", "", "Base URL of a self-managed GitLab instance.")
	ScanCmd.Flags().StringVar(&scanOptions.ArchiveURL, "archive-url", "", "URL of a tar.gz repository archive to download and scan.")
	ScanCmd.Flags().StringVarP(&scanOptions.Ref, "branch", "b", "", "Branch, tag or commit to scan (default: the repository default branch).")
	ScanCmd.Flags().StringVarP(&scanOptions.ReportFormat, "format", "f", FormatJSON, "Format for the report with results (json, sarif, html).")
	ScanCmd.Flags().StringVarP(&scanOptions.OutputPath, "output", "o", "-", "Path to the output file. '-' writes to stdout.")
	ScanCmd.Flags().StringVar(&scanOptions.Title, "title", "Code Analysis Report", "Title for the HTML report.")
	ScanCmd.Flags().StringVar(&scanOptions.TemplateFile, "template", "", "Path to a custom HTML report template.")
	ScanCmd.Flags().StringSliceVar(&scanOptions.RuleFiles, "rules", nil, "Comma-separated list of YAML rule files merged after the built-in catalog.")
	ScanCmd.Flags().StringVar(&scanOptions.FailOn, "fail-on", "", "Exit with an error when findings at or above this severity exist (low, medium, high, critical).")
	ScanCmd.Flags().IntVarP(&scanOptions.Jobs, "jobs", "j", 0, "Number of concurrent scan jobs. Defaults to the configured value or 1.")
	ScanCmd.Flags().BoolP("help", "h", false, "Show help for the scan command.")
}
