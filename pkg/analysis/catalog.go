package analysis

import (
	"regexp"
)

// Rule is one pattern-matching rule from the catalog. Patterns are compiled
// with case-insensitive matching and applied to the whole file content, not
// line by line.
type Rule struct {
	Slug           string
	Title          string
	Description    string
	Category       Category
	Severity       Severity
	Recommendation string
	CweID          string // security rules only
	Pattern        *regexp.Regexp
}

// Catalog holds the ordered rule sets applied to every scanned file.
// It is immutable after construction and safe for concurrent use.
type Catalog struct {
	security []Rule
	quality  []Rule
}

// NewCatalog builds a catalog from explicit rule lists. The emission order of
// findings follows the list order: security rules first, then quality rules.
func NewCatalog(security, quality []Rule) *Catalog {
	return &Catalog{security: security, quality: quality}
}

// Security returns the ordered security rule set. Callers must not mutate it.
func (c *Catalog) Security() []Rule {
	return c.security
}

// Quality returns the ordered quality rule set. Callers must not mutate it.
func (c *Catalog) Quality() []Rule {
	return c.quality
}

// FindByTitle looks a rule up by its title across both rule sets. The
// security summary uses it to join CWE ids back onto findings.
func (c *Catalog) FindByTitle(title string) (Rule, bool) {
	for _, r := range c.security {
		if r.Title == title {
			return r, true
		}
	}
	for _, r := range c.quality {
		if r.Title == title {
			return r, true
		}
	}
	return Rule{}, false
}

// Extend returns a new catalog with extra rules appended after the built-in
// ones. Rules with CategorySecurity join the security set; everything else
// joins the quality set.
func (c *Catalog) Extend(extra []Rule) *Catalog {
	next := &Catalog{
		security: append([]Rule{}, c.security...),
		quality:  append([]Rule{}, c.quality...),
	}
	for _, r := range extra {
		if r.Category == CategorySecurity {
			next.security = append(next.security, r)
		} else {
			next.quality = append(next.quality, r)
		}
	}
	return next
}

// DefaultCatalog returns the built-in rule catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultSecurityRules(), defaultQualityRules())
}

func defaultSecurityRules() []Rule {
	return []Rule{
		{
			Slug:           "use-of-eval",
			Title:          "Use of eval()",
			Description:    "eval() executes arbitrary strings as code and can lead to code injection",
			Category:       CategorySecurity,
			Severity:       SeverityHigh,
			Recommendation: "Avoid eval(); use JSON.parse() or a safer alternative",
			CweID:          "CWE-95",
			Pattern:        regexp.MustCompile(`(?i)\beval\s*\(`),
		},
		{
			Slug:           "innerhtml-xss",
			Title:          "innerHTML XSS Risk",
			Description:    "Assigning concatenated strings to innerHTML can introduce cross-site scripting",
			Category:       CategorySecurity,
			Severity:       SeverityHigh,
			Recommendation: "Use textContent, or sanitize the markup before assigning it",
			CweID:          "CWE-79",
			Pattern:        regexp.MustCompile(`(?i)\.innerHTML\s*=\s*[^;\n]*\+`),
		},
		{
			Slug:           "document-write",
			Title:          "document.write Usage",
			Description:    "document.write can enable cross-site scripting and blocks page rendering",
			Category:       CategorySecurity,
			Severity:       SeverityMedium,
			Recommendation: "Use DOM manipulation methods instead of document.write",
			CweID:          "CWE-79",
			Pattern:        regexp.MustCompile(`(?i)document\.write\s*\(`),
		},
		{
			Slug:           "sql-injection",
			Title:          "SQL Injection Risk",
			Description:    "SQL query built with string concatenation is vulnerable to injection",
			Category:       CategorySecurity,
			Severity:       SeverityCritical,
			Recommendation: "Use parameterized queries or prepared statements",
			CweID:          "CWE-89",
			Pattern:        regexp.MustCompile(`(?i)SELECT\s+.+\s+FROM\s+.+WHERE.*\+`),
		},
		{
			Slug:           "hardcoded-password",
			Title:          "Hardcoded Password",
			Description:    "A password literal is embedded directly in the source",
			Category:       CategorySecurity,
			Severity:       SeverityHigh,
			Recommendation: "Load credentials from the environment or a secret store",
			CweID:          "CWE-798",
			Pattern:        regexp.MustCompile(`(?i)password\s*=\s*["'][^"']+["']`),
		},
		{
			Slug:           "weak-random",
			Title:          "Weak Random Number Generation",
			Description:    "Math.random() is not cryptographically secure",
			Category:       CategorySecurity,
			Severity:       SeverityMedium,
			Recommendation: "Use crypto.getRandomValues() for security-sensitive randomness",
			CweID:          "CWE-338",
			Pattern:        regexp.MustCompile(`(?i)Math\.random\s*\(`),
		},
	}
}

func defaultQualityRules() []Rule {
	return []Rule{
		{
			Slug:           "console-statement",
			Title:          "Console Statement",
			Description:    "Console logging left in production code",
			Category:       CategoryQuality,
			Severity:       SeverityLow,
			Recommendation: "Remove console statements or route them through a logger",
			Pattern:        regexp.MustCompile(`(?i)console\.(log|warn|error|info|debug)\s*\(`),
		},
		{
			Slug:           "debugger-statement",
			Title:          "Debugger Statement",
			Description:    "A debugger statement halts execution when dev tools are open",
			Category:       CategoryQuality,
			Severity:       SeverityMedium,
			Recommendation: "Remove debugger statements before shipping",
			Pattern:        regexp.MustCompile(`(?i)debugger;`),
		},
		{
			Slug:           "todo-comment",
			Title:          "TODO/FIXME Comment",
			Description:    "Unresolved TODO, FIXME or HACK marker in a comment",
			Category:       CategoryQuality,
			Severity:       SeverityLow,
			Recommendation: "Resolve the marker or track it in the issue tracker",
			Pattern:        regexp.MustCompile(`(?i)//.*(TODO|FIXME|HACK)`),
		},
	}
}
