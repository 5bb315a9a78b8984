package analysis

// Category classifies what aspect of the code a finding is about.
type Category string

const (
	CategorySecurity        Category = "security"
	CategoryQuality         Category = "quality"
	CategoryPerformance     Category = "performance"
	CategoryMaintainability Category = "maintainability"
)

// Severity ranks how urgent a finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// FileRecord is one already-materialized source file handed to the engine.
// The caller owns the record for the duration of the analysis call; the
// engine never reads from disk or the network.
type FileRecord struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Finding is a single issue detected in one file. Findings are produced once
// per match and never mutated afterwards.
type Finding struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	File           string   `json:"file"`
	Line           int      `json:"line"`
	Column         int      `json:"column,omitempty"`
	CodeSnippet    string   `json:"codeSnippet"`
	Recommendation string   `json:"recommendation"`
	Rule           string   `json:"rule"`
}

// CodeMetrics holds the additive per-project counters accumulated while
// scanning. Languages maps a lowercased file extension to the number of
// files carrying it.
type CodeMetrics struct {
	TotalLines     int            `json:"totalLines"`
	TotalFiles     int            `json:"totalFiles"`
	Languages      map[string]int `json:"languages"`
	Complexity     int            `json:"complexity"`
	DuplicateLines int            `json:"duplicateLines"`
	TestFiles      int            `json:"testFiles"`
}

// Vulnerability is a security finding re-shaped for the security summary,
// enriched with the CWE id of the originating catalog rule.
type Vulnerability struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	File           string   `json:"file"`
	Line           int      `json:"line"`
	CweID          string   `json:"cweId"`
	Recommendation string   `json:"recommendation"`
}

// SecurityAnalysis tallies security findings by severity.
type SecurityAnalysis struct {
	Critical        int             `json:"critical"`
	High            int             `json:"high"`
	Medium          int             `json:"medium"`
	Low             int             `json:"low"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}

// FileCoverage is the estimated coverage percentage for one file.
type FileCoverage struct {
	File     string  `json:"file"`
	Coverage float64 `json:"coverage"`
}

// CoverageAnalysis carries the heuristic coverage figures. The numbers are
// derived from the ratio of test-like files to all files; nothing here
// executes tests, so they are an estimate, not measured coverage.
type CoverageAnalysis struct {
	Overall   float64        `json:"overall"`
	Lines     float64        `json:"lines"`
	Functions float64        `json:"functions"`
	Branches  float64        `json:"branches"`
	Files     []FileCoverage `json:"files"`
}

// AnalysisResult is the aggregate output of one AnalyzeFiles call. It is
// immutable once returned and serializes with stable field names for any
// downstream consumer.
type AnalysisResult struct {
	Findings []Finding        `json:"findings"`
	Metrics  CodeMetrics      `json:"metrics"`
	Security SecurityAnalysis `json:"security"`
	Coverage CoverageAnalysis `json:"coverage"`
}
