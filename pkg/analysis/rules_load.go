package analysis

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// ruleFile is the on-disk shape of a custom rule set.
type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Slug           string `yaml:"slug"`
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Category       string `yaml:"category"`
	Severity       string `yaml:"severity"`
	Recommendation string `yaml:"recommendation"`
	Cwe            string `yaml:"cwe"`
	Pattern        string `yaml:"pattern"`
}

// LoadRulesFile reads extra rules from a YAML file. Patterns are compiled
// case-insensitive; a pattern that does not compile fails the whole load so
// broken rules surface at startup, not mid-scan.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %q: %w", path, err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		rule, err := spec.toRule()
		if err != nil {
			return nil, fmt.Errorf("rule %d in %q: %w", i+1, path, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s ruleSpec) toRule() (Rule, error) {
	if s.Title == "" {
		return Rule{}, fmt.Errorf("rule title must not be empty")
	}
	if s.Pattern == "" {
		return Rule{}, fmt.Errorf("rule %q has no pattern", s.Title)
	}

	pattern, err := regexp.Compile("(?i)" + s.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q has an invalid pattern: %w", s.Title, err)
	}

	category, err := parseCategory(s.Category)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", s.Title, err)
	}
	severity, err := parseSeverity(s.Severity)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", s.Title, err)
	}

	slug := s.Slug
	if slug == "" {
		slug = slugify(s.Title)
	}

	return Rule{
		Slug:           slug,
		Title:          s.Title,
		Description:    s.Description,
		Category:       category,
		Severity:       severity,
		Recommendation: s.Recommendation,
		CweID:          s.Cwe,
		Pattern:        pattern,
	}, nil
}

func parseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategorySecurity, CategoryQuality, CategoryPerformance, CategoryMaintainability:
		return Category(raw), nil
	case "":
		return CategoryQuality, nil
	default:
		return "", fmt.Errorf("unknown category %q", raw)
	}
}

func parseSeverity(raw string) (Severity, error) {
	switch Severity(raw) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(raw), nil
	case "":
		return SeverityLow, nil
	default:
		return "", fmt.Errorf("unknown severity %q", raw)
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
