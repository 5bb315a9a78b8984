// Package sarifreport converts an analysis result into a SARIF 2.1.0 report
// so findings can flow into code-scanning UIs and other SARIF consumers.
package sarifreport

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/codescope-dev/codescope/internal/report"
	"github.com/codescope-dev/codescope/pkg/analysis"
)

const informationURI = "https://github.com/codescope-dev/codescope"

// FromResult builds a single-run SARIF report. Rule descriptors are emitted
// once per rule slug; results keep the finding order of the analysis.
func FromResult(result *analysis.AnalysisResult, catalog *analysis.Catalog) (*sarif.Report, error) {
	sarifReport, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(report.ToolName, informationURI)

	seenRules := map[string]bool{}
	for _, finding := range result.Findings {
		if !seenRules[finding.Rule] {
			seenRules[finding.Rule] = true
			descriptor := run.AddRule(finding.Rule).
				WithDescription(finding.Title).
				WithHelpURI(informationURI)

			properties := sarif.Properties{
				"category": string(finding.Category),
				"severity": string(finding.Severity),
			}
			if rule, ok := catalog.FindByTitle(finding.Title); ok && rule.CweID != "" {
				properties["cwe"] = rule.CweID
			}
			descriptor.WithProperties(properties)
		}

		snippet := finding.CodeSnippet
		region := sarif.NewSimpleRegion(finding.Line, finding.Line).
			WithSnippet(&sarif.ArtifactContent{Text: &snippet})

		run.CreateResultForRule(finding.Rule).
			WithLevel(levelFor(finding.Severity)).
			WithMessage(sarif.NewTextMessage(finding.Description)).
			AddLocation(sarif.NewLocationWithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(finding.File)).
					WithRegion(region),
			))
	}

	sarifReport.AddRun(run)
	return sarifReport, nil
}

// WriteFile pretty-prints a SARIF report to the given path.
func WriteFile(sarifReport *sarif.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer file.Close()

	if err := sarifReport.PrettyWrite(file); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

// levelFor maps finding severities onto the SARIF level set.
func levelFor(severity analysis.Severity) string {
	switch severity {
	case analysis.SeverityCritical, analysis.SeverityHigh:
		return "error"
	case analysis.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
