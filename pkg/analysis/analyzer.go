package analysis

import (
	"regexp"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// coarse whole-file complexity signal, separate from the per-function one
var complexityKeywordPattern = regexp.MustCompile(`(?i)\b(if|for|while|switch|catch)\b`)

// Options configures an Analyzer.
type Options struct {
	// Catalog overrides the built-in rule catalog.
	Catalog *Catalog
	// Estimator produces the coverage figures. Defaults to the
	// deterministic estimator.
	Estimator CoverageEstimator
	// Jobs bounds concurrent per-file scanning. Values below 2 keep the
	// scan sequential.
	Jobs int
	// FoldTestFileNames makes test-file detection case-insensitive.
	// Detection is case-sensitive by default.
	FoldTestFileNames bool
}

// Analyzer runs the file scanner over a whole project and aggregates the
// per-file findings into one result. Instances hold only read-only state
// and may be reused across calls.
type Analyzer struct {
	scanner           *Scanner
	estimator         CoverageEstimator
	jobs              int
	foldTestFileNames bool
	logger            hclog.Logger
}

// NewAnalyzer creates an Analyzer with the provided options.
func NewAnalyzer(opts Options, logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	estimator := opts.Estimator
	if estimator == nil {
		estimator = DeterministicEstimator{}
	}
	return &Analyzer{
		scanner:           NewScanner(opts.Catalog, logger),
		estimator:         estimator,
		jobs:              opts.Jobs,
		foldTestFileNames: opts.FoldTestFileNames,
		logger:            logger,
	}
}

// Scanner exposes the per-file scanner for standalone single-file analysis.
func (a *Analyzer) Scanner() *Scanner {
	return a.scanner
}

// AnalyzeFiles scans every file in input order and returns the aggregated
// result. Zero files is valid input and yields a zero-valued result. The
// findings sequence is canonical regardless of the job count: file input
// order, then rule order, then match order.
func (a *Analyzer) AnalyzeFiles(files []FileRecord) *AnalysisResult {
	a.logger.Debug("starting analysis", "files", len(files), "jobs", a.jobs)

	perFile := a.scanAll(files)

	findings := []Finding{}
	metrics := CodeMetrics{
		TotalFiles: len(files),
		Languages:  map[string]int{},
	}

	for i, file := range files {
		findings = append(findings, perFile[i]...)

		metrics.TotalLines += lineCount(file.Content)
		if ext, ok := fileExtension(file.Name); ok {
			metrics.Languages[ext]++
		}
		if a.isTestFile(file.Name) {
			metrics.TestFiles++
		}
		metrics.Complexity += len(complexityKeywordPattern.FindAllString(file.Content, -1))
		metrics.DuplicateLines += redundantLineCount(file.Content)
	}

	testRatio := 0.0
	if metrics.TotalFiles > 0 {
		testRatio = float64(metrics.TestFiles) / float64(metrics.TotalFiles)
	}

	result := &AnalysisResult{
		Findings: findings,
		Metrics:  metrics,
		Security: a.securitySummary(findings),
		Coverage: a.estimator.Estimate(testRatio, files),
	}

	a.logger.Debug("analysis complete", "findings", len(findings), "lines", metrics.TotalLines)
	return result
}

// scanAll produces the per-file finding slices, indexed by input position so
// the merge stays in canonical order even when scanning runs concurrently.
func (a *Analyzer) scanAll(files []FileRecord) [][]Finding {
	perFile := make([][]Finding, len(files))

	if a.jobs < 2 || len(files) < 2 {
		for i, file := range files {
			perFile[i] = a.scanner.ScanFile(file)
		}
		return perFile
	}

	guard := make(chan struct{}, a.jobs)
	var wg sync.WaitGroup
	for i := range files {
		guard <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			perFile[i] = a.scanner.ScanFile(files[i])
			<-guard
		}(i)
	}
	wg.Wait()
	return perFile
}

// securitySummary tallies security findings by severity and re-shapes them
// into vulnerability records carrying the originating rule's CWE id.
func (a *Analyzer) securitySummary(findings []Finding) SecurityAnalysis {
	summary := SecurityAnalysis{Vulnerabilities: []Vulnerability{}}

	for _, f := range findings {
		if f.Category != CategorySecurity {
			continue
		}

		switch f.Severity {
		case SeverityCritical:
			summary.Critical++
		case SeverityHigh:
			summary.High++
		case SeverityMedium:
			summary.Medium++
		case SeverityLow:
			summary.Low++
		}

		cwe := ""
		if rule, ok := a.scanner.catalog.FindByTitle(f.Title); ok {
			cwe = rule.CweID
		}

		summary.Vulnerabilities = append(summary.Vulnerabilities, Vulnerability{
			ID:             f.ID,
			Title:          f.Title,
			Description:    f.Description,
			Severity:       f.Severity,
			File:           f.File,
			Line:           f.Line,
			CweID:          cwe,
			Recommendation: f.Recommendation,
		})
	}
	return summary
}

func (a *Analyzer) isTestFile(name string) bool {
	if a.foldTestFileNames {
		name = strings.ToLower(name)
	}
	return strings.Contains(name, "test") || strings.Contains(name, "spec")
}

// lineCount counts source lines without treating a trailing newline as an
// extra empty line.
func lineCount(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n") + 1
	if strings.HasSuffix(content, "\n") {
		n--
	}
	return n
}

// fileExtension returns the lowercased extension after the last dot.
// Files without an extension are skipped for the language counter.
func fileExtension(name string) (string, bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return "", false
	}
	return strings.ToLower(name[idx+1:]), true
}

// redundantLineCount counts the surplus copies in every duplicate-line
// group: a line appearing n times contributes n-1.
func redundantLineCount(content string) int {
	_, groups := duplicateLineGroups(strings.Split(content, "\n"))
	total := 0
	for _, occurrences := range groups {
		if len(occurrences) > 1 {
			total += len(occurrences) - 1
		}
	}
	return total
}
