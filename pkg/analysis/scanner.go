package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	complexityThreshold     = 10
	complexityHighThreshold = 20
	duplicationMinLineLen   = 20
	snippetContextLines     = 2
)

var (
	// function declarations of the `function name(...) {` shape
	functionPattern = regexp.MustCompile(`(?i)function\s+(\w+)\s*\([^)]*\)\s*\{`)
	// per-function complexity indicators counted inside the function body
	complexityIndicatorPattern = regexp.MustCompile(`(?i)\b(if|for|while|switch|catch)\b|\?|&&|\|\|`)
	// variable declarations checked by the naming heuristic
	declarationPattern = regexp.MustCompile(`(?i)\b(?:var|let|const)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
)

// shortNameAllowlist holds the single-letter names the naming heuristic
// accepts: conventional loop counters and coordinates.
var shortNameAllowlist = map[string]struct{}{
	"i": {}, "j": {}, "k": {}, "x": {}, "y": {}, "z": {},
}

// Scanner applies the rule catalog plus the structural heuristics to one
// file at a time. It holds no per-file state and is safe for concurrent use.
type Scanner struct {
	catalog *Catalog
	logger  hclog.Logger
}

// NewScanner creates a Scanner over the given catalog. A nil catalog falls
// back to the built-in rules; a nil logger discards log output.
func NewScanner(catalog *Catalog, logger hclog.Logger) *Scanner {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Scanner{catalog: catalog, logger: logger}
}

// Catalog returns the rule catalog the scanner was built with.
func (s *Scanner) Catalog() *Catalog {
	return s.catalog
}

// ScanFile runs every rule and heuristic against one file. A file with no
// matches yields an empty slice, not an error. A panic while matching is
// caught and logged so one malformed file never aborts the remaining run;
// findings collected before the failure are kept.
func (s *Scanner) ScanFile(file FileRecord) (findings []Finding) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("file analysis failed, keeping partial findings", "file", file.Path, "panic", r)
		}
	}()

	lines := strings.Split(file.Content, "\n")
	findings = []Finding{}

	for _, rule := range s.catalog.security {
		findings = append(findings, s.matchRule(file, rule, lines)...)
	}
	for _, rule := range s.catalog.quality {
		findings = append(findings, s.matchRule(file, rule, lines)...)
	}

	findings = append(findings, s.complexityFindings(file, lines)...)
	findings = append(findings, s.namingFindings(file, lines)...)
	findings = append(findings, s.duplicationFindings(file, lines)...)

	return findings
}

// matchRule emits one finding per non-overlapping match of the rule's
// pattern against the whole file content, in source order.
func (s *Scanner) matchRule(file FileRecord, rule Rule, lines []string) []Finding {
	var out []Finding
	for _, loc := range rule.Pattern.FindAllStringIndex(file.Content, -1) {
		line := lineOfOffset(file.Content, loc[0])
		out = append(out, Finding{
			ID:             findingID(file.Path, line, rule.Title),
			Title:          rule.Title,
			Description:    rule.Description,
			Category:       rule.Category,
			Severity:       rule.Severity,
			File:           file.Path,
			Line:           line,
			CodeSnippet:    snippet(lines, line),
			Recommendation: rule.Recommendation,
			Rule:           rule.Slug,
		})
	}
	return out
}

// complexityFindings locates every `function name(...) {` declaration,
// bounds its body by brace-depth counting, and flags functions whose
// complexity-indicator count exceeds the threshold.
func (s *Scanner) complexityFindings(file FileRecord, lines []string) []Finding {
	var out []Finding
	for _, m := range functionPattern.FindAllStringSubmatchIndex(file.Content, -1) {
		name := file.Content[m[2]:m[3]]
		// the match ends at the opening brace of the body
		body, ok := braceSpan(file.Content, m[1]-1)
		if !ok {
			continue
		}

		count := len(complexityIndicatorPattern.FindAllString(body, -1))
		if count <= complexityThreshold {
			continue
		}

		severity := SeverityMedium
		if count > complexityHighThreshold {
			severity = SeverityHigh
		}

		line := lineOfOffset(file.Content, m[0])
		out = append(out, Finding{
			ID:             findingID(file.Path, line, "High Cyclomatic Complexity"),
			Title:          "High Cyclomatic Complexity",
			Description:    fmt.Sprintf("Function '%s' has a cyclomatic complexity of %d, above the threshold of %d", name, count, complexityThreshold),
			Category:       CategoryMaintainability,
			Severity:       severity,
			File:           file.Path,
			Line:           line,
			CodeSnippet:    snippet(lines, line),
			Recommendation: "Split the function into smaller, single-purpose functions",
			Rule:           "high-cyclomatic-complexity",
		})
	}
	return out
}

// namingFindings flags single-letter variable names outside the allow-list.
func (s *Scanner) namingFindings(file FileRecord, lines []string) []Finding {
	var out []Finding
	for _, m := range declarationPattern.FindAllStringSubmatchIndex(file.Content, -1) {
		name := file.Content[m[2]:m[3]]
		if len(name) != 1 {
			continue
		}
		if _, ok := shortNameAllowlist[name]; ok {
			continue
		}

		line := lineOfOffset(file.Content, m[0])
		out = append(out, Finding{
			ID:             findingID(file.Path, line, "Poor Variable Naming"),
			Title:          "Poor Variable Naming",
			Description:    fmt.Sprintf("Variable '%s' has a non-descriptive single-character name", name),
			Category:       CategoryMaintainability,
			Severity:       SeverityLow,
			File:           file.Path,
			Line:           line,
			CodeSnippet:    snippet(lines, line),
			Recommendation: "Use a descriptive name that states what the variable holds",
			Rule:           "poor-variable-naming",
		})
	}
	return out
}

// duplicationFindings groups non-comment lines longer than the minimum
// length by identical trimmed text and emits one finding per group with
// more than one occurrence, anchored at the first occurrence.
func (s *Scanner) duplicationFindings(file FileRecord, lines []string) []Finding {
	order, groups := duplicateLineGroups(lines)

	var out []Finding
	for _, key := range order {
		occurrences := groups[key]
		if len(occurrences) < 2 {
			continue
		}

		numbers := make([]string, len(occurrences))
		for i, n := range occurrences {
			numbers[i] = strconv.Itoa(n)
		}

		first := occurrences[0]
		out = append(out, Finding{
			ID:             findingID(file.Path, first, "Code Duplication"),
			Title:          "Code Duplication",
			Description:    fmt.Sprintf("Identical code found at lines %s", strings.Join(numbers, ", ")),
			Category:       CategoryMaintainability,
			Severity:       SeverityMedium,
			File:           file.Path,
			Line:           first,
			CodeSnippet:    snippet(lines, first),
			Recommendation: "Extract the duplicated code into a shared function",
			Rule:           "code-duplication",
		})
	}
	return out
}

// duplicateLineGroups maps trimmed line text to the 1-based line numbers it
// appears on, for lines long enough to be meaningful and not comment lines.
// The returned order slice preserves first-occurrence order so emission is
// deterministic.
func duplicateLineGroups(lines []string) ([]string, map[string][]int) {
	groups := make(map[string][]int)
	var order []string
	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if len(trimmed) <= duplicationMinLineLen {
			continue
		}
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		if _, seen := groups[trimmed]; !seen {
			order = append(order, trimmed)
		}
		groups[trimmed] = append(groups[trimmed], i+1)
	}
	return order, groups
}

// braceSpan returns the text between the opening brace at open and its
// matching closing brace, found by depth counting. ok is false when the
// brace never closes.
func braceSpan(content string, open int) (string, bool) {
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[open+1 : i], true
			}
		}
	}
	return "", false
}

// lineOfOffset computes the 1-based line number of a byte offset by counting
// the newlines preceding it. Line numbers derived this way stay consistent
// with snippet extraction over the same split.
func lineOfOffset(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// snippet returns the source window around a 1-based line, clamped to the
// file bounds.
func snippet(lines []string, line int) string {
	start := line - 1 - snippetContextLines
	if start < 0 {
		start = 0
	}
	end := line + snippetContextLines
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// findingID derives the stable finding id: path, line and title with spaces
// replaced by underscores.
func findingID(path string, line int, title string) string {
	return fmt.Sprintf("%s_%d_%s", path, line, strings.ReplaceAll(title, " ", "_"))
}
