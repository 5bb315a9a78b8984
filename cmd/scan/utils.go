package scan

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codescope-dev/codescope/internal/render"
	"github.com/codescope-dev/codescope/internal/report"
	"github.com/codescope-dev/codescope/internal/sarifreport"
	"github.com/codescope-dev/codescope/internal/source"
	"github.com/codescope-dev/codescope/pkg/analysis"
	"github.com/codescope-dev/codescope/pkg/shared/config"
	"github.com/codescope-dev/codescope/pkg/shared/files"
	"github.com/codescope-dev/codescope/pkg/shared/httpclient"
)

// collectFiles materializes the file set for whichever target mode the
// arguments selected and returns a short target label for the report.
func collectFiles(ctx context.Context, options *RunOptionsScan, args []string, logger hclog.Logger) (string, []analysis.FileRecord, error) {
	opts := sourceOptions(AppConfig)

	switch {
	case options.GitHubRepo != "":
		owner, repo := splitRepo(options.GitHubRepo)
		src := source.NewGitHubSource(os.Getenv("CODESCOPE_GITHUB_TOKEN"), owner, repo, options.Ref, opts, logger)
		records, err := src.Collect(ctx)
		return options.GitHubRepo, records, err

	case options.GitLabRepo != "":
		src, err := source.NewGitLabSource(options.GitLabURL, os.Getenv("CODESCOPE_GITLAB_TOKEN"), options.GitLabRepo, options.Ref, opts, logger)
		if err != nil {
			return "", nil, err
		}
		records, err := src.Collect()
		return options.GitLabRepo, records, err

	case options.ArchiveURL != "":
		client := httpclient.New(logger, AppConfig)
		records, err := source.CollectArchive(ctx, client, options.ArchiveURL, opts, logger)
		return options.ArchiveURL, records, err

	default:
		records, err := source.CollectDir(args[0], opts, logger)
		return args[0], records, err
	}
}

// buildCatalog merges the built-in rules with the configured rule files and
// any files passed on the command line.
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

// buildEstimator picks the coverage estimation strategy from the config.
func buildEstimator(cfg *config.Config) analysis.CoverageEstimator {
	if cfg.Coverage.Mode == config.CoverageModeJitter {
		return analysis.NewJitterEstimator(cfg.Coverage.Seed)
	}
	return analysis.DeterministicEstimator{}
}

func sourceOptions(cfg *config.Config) source.Options {
	return source.Options{
		MaxFileSize:       cfg.Scan.MaxFileSize,
		MaxFiles:          cfg.Scan.MaxFiles,
		IncludeExtensions: cfg.Scan.IncludeExtensions,
		ExcludeExtensions: cfg.Scan.ExcludeExtensions,
	}
}

// jobCount resolves the effective concurrency, flag over config.
func jobCount(options *RunOptionsScan, cfg *config.Config) int {
	if options.Jobs > 0 {
		return options.Jobs
	}
	if cfg.Scan.Jobs > 0 {
		return cfg.Scan.Jobs
	}
	return 1
}

func splitRepo(full string) (string, string) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 {
		return full, ""
	}
	return parts[0], parts[1]
}

// severityRank orders severities so fail-on thresholds can compare them.
func severityRank(severity string) int {
	switch analysis.Severity(severity) {
	case analysis.SeverityCritical:
		return 4
	case analysis.SeverityHigh:
		return 3
	case analysis.SeverityMedium:
		return 2
	case analysis.SeverityLow:
		return 1
	default:
		return 0
	}
}

// countAtOrAbove counts findings whose severity meets the threshold.
func countAtOrAbove(result *analysis.AnalysisResult, threshold string) int {
	minRank := severityRank(threshold)
	count := 0
	for _, finding := range result.Findings {
		if severityRank(string(finding.Severity)) >= minRank {
			count++
		}
	}
	return count
}

// writeReport serializes the envelope in the requested format. The output
// path '-' targets stdout for every format.
func writeReport(envelope *report.Envelope, catalog *analysis.Catalog, options *RunOptionsScan, logger hclog.Logger) error {
	switch options.ReportFormat {
	case FormatJSON:
		return envelope.WriteJSON(options.OutputPath)

	case FormatSarif:
		sarifReport, err := sarifreport.FromResult(envelope.Result, catalog)
		if err != nil {
			return err
		}
		if options.OutputPath == "-" {
			return sarifReport.PrettyWrite(os.Stdout)
		}
		return sarifreport.WriteFile(sarifReport, options.OutputPath)

	case FormatHTML:
		var buf bytes.Buffer
		data := render.NewPageData(options.Title, envelope)
		if err := render.Render(&buf, data, options.TemplateFile); err != nil {
			return err
		}
		if options.OutputPath == "-" {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := files.WriteFileAtomic(options.OutputPath, buf.Bytes()); err != nil {
			return err
		}
		logger.Info("report saved", "path", options.OutputPath, "format", options.ReportFormat)
		return nil

	default:
		return fmt.Errorf("unknown report format: %v", options.ReportFormat)
	}
}
