package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFileDetectsEvalAndConsole(t *testing.T) {
	s := NewScanner(nil, nil)

	findings := s.ScanFile(FileRecord{
		Name:    "a.js",
		Path:    "a.js",
		Content: "eval('2+2')\nconsole.log(1)\n",
	})

	require.Len(t, findings, 2)

	assert.Equal(t, "Use of eval()", findings[0].Title)
	assert.Equal(t, CategorySecurity, findings[0].Category)
	assert.Equal(t, SeverityHigh, findings[0].Severity)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, "a.js_1_Use_of_eval()", findings[0].ID)
	assert.Equal(t, "use-of-eval", findings[0].Rule)

	assert.Equal(t, "Console Statement", findings[1].Title)
	assert.Equal(t, CategoryQuality, findings[1].Category)
	assert.Equal(t, 2, findings[1].Line)
}

func TestScanFileSecurityRules(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		title    string
		severity Severity
	}{
		{"sql concatenation", `db.run("SELECT id FROM users WHERE name = '" + name + "'")`, "SQL Injection Risk", SeverityCritical},
		{"innerHTML concatenation", `el.innerHTML = "<b>" + name;`, "innerHTML XSS Risk", SeverityHigh},
		{"document write", `document.write("<p>hi</p>")`, "document.write Usage", SeverityMedium},
		{"hardcoded password", `const password = "hunter2";`, "Hardcoded Password", SeverityHigh},
		{"weak rng", `const token = Math.random();`, "Weak Random Number Generation", SeverityMedium},
	}

	s := NewScanner(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: tt.content})

			var titles []string
			for _, f := range findings {
				titles = append(titles, f.Title)
				if f.Title == tt.title {
					assert.Equal(t, tt.severity, f.Severity)
					assert.Equal(t, CategorySecurity, f.Category)
					assert.Equal(t, 1, f.Line)
				}
			}
			assert.Contains(t, titles, tt.title)
		})
	}
}

func TestScanFileQualityRules(t *testing.T) {
	s := NewScanner(nil, nil)

	findings := s.ScanFile(FileRecord{
		Name:    "f.js",
		Path:    "f.js",
		Content: "debugger;\n// TODO: remove this\n",
	})

	require.Len(t, findings, 2)
	assert.Equal(t, "Debugger Statement", findings[0].Title)
	assert.Equal(t, SeverityMedium, findings[0].Severity)
	assert.Equal(t, "TODO/FIXME Comment", findings[1].Title)
	assert.Equal(t, 2, findings[1].Line)
}

func TestScanFileMarkerAnywhereInComment(t *testing.T) {
	s := NewScanner(nil, nil)

	findings := s.ScanFile(FileRecord{
		Name:    "f.js",
		Path:    "f.js",
		Content: "// remember: FIXME later\nvar ready = true;\n// hack around the cache\n",
	})

	require.Len(t, findings, 2)
	assert.Equal(t, "TODO/FIXME Comment", findings[0].Title)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, "TODO/FIXME Comment", findings[1].Title)
	assert.Equal(t, 3, findings[1].Line)
}

func TestScanFileRecoversFromRulePanic(t *testing.T) {
	// a rule without a compiled pattern makes matching panic
	catalog := DefaultCatalog().Extend([]Rule{{
		Slug:     "broken-rule",
		Title:    "Broken Rule",
		Category: CategoryQuality,
		Severity: SeverityLow,
	}})
	s := NewScanner(catalog, nil)

	findings := s.ScanFile(FileRecord{Name: "a.js", Path: "a.js", Content: "eval('x')\n"})
	require.Len(t, findings, 1, "findings collected before the failure are kept")
	assert.Equal(t, "Use of eval()", findings[0].Title)

	findings = s.ScanFile(FileRecord{Name: "b.js", Path: "b.js", Content: "document.write('x')\n"})
	require.Len(t, findings, 1, "a failing rule never aborts later files")
	assert.Equal(t, "document.write Usage", findings[0].Title)
}

func TestScanFileLineNumbersMatchSplit(t *testing.T) {
	content := "var a = 1;\nvar b = 2;\ndocument.write('x');\nvar c = 3;\n"
	s := NewScanner(nil, nil)

	findings := s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: content})

	lines := strings.Split(content, "\n")
	for _, f := range findings {
		require.GreaterOrEqual(t, f.Line, 1)
		require.LessOrEqual(t, f.Line, len(lines))
		if f.Title == "document.write Usage" {
			assert.Contains(t, lines[f.Line-1], "document.write")
		}
	}
}

func TestScanFileEmptyAndCleanContent(t *testing.T) {
	s := NewScanner(nil, nil)

	assert.Empty(t, s.ScanFile(FileRecord{Name: "empty.js", Path: "empty.js", Content: ""}))
	assert.NotNil(t, s.ScanFile(FileRecord{Name: "empty.js", Path: "empty.js", Content: ""}))

	clean := "const sum = (a, b) => a + b;\n"
	assert.Empty(t, s.ScanFile(FileRecord{Name: "clean.js", Path: "clean.js", Content: clean}))
}

func TestScanFileComplexityHeuristic(t *testing.T) {
	body := strings.Repeat("  if (a) { b(); }\n", 11)
	content := "function messy(a) {\n" + body + "}\n"

	s := NewScanner(nil, nil)
	findings := s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: content})

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "High Cyclomatic Complexity", f.Title)
	assert.Equal(t, CategoryMaintainability, f.Category)
	assert.Equal(t, SeverityMedium, f.Severity)
	assert.Equal(t, 1, f.Line)
	assert.Contains(t, f.Description, "messy")
	assert.Contains(t, f.Description, "11")
}

func TestScanFileComplexityHighSeverity(t *testing.T) {
	body := strings.Repeat("  if (a) { b(); }\n", 21)
	content := "function worse(a) {\n" + body + "}\n"

	s := NewScanner(nil, nil)
	findings := s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: content})

	require.Len(t, findings, 1)
	assert.Equal(t, SeverityHigh, findings[0].Severity)
}

func TestScanFileComplexityIgnoresModestFunctions(t *testing.T) {
	content := "function fine(a) {\n  if (a) { return 1; }\n  return 0;\n}\n"

	s := NewScanner(nil, nil)
	assert.Empty(t, s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: content}))
}

func TestScanFileNamingHeuristic(t *testing.T) {
	s := NewScanner(nil, nil)

	// allow-listed loop counter names pass
	assert.Empty(t, s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: "let x = 1;\n"}))
	assert.Empty(t, s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: "for (var i = 0; i < n; i++) {}\n"}))

	findings := s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: "let q = 1;\n"})
	require.Len(t, findings, 1)
	assert.Equal(t, "Poor Variable Naming", findings[0].Title)
	assert.Equal(t, SeverityLow, findings[0].Severity)
	assert.Contains(t, findings[0].Description, "'q'")
}

func TestScanFileDuplicationHeuristic(t *testing.T) {
	dup := "this is a sufficiently long duplicate line of code"
	lines := []string{"short", "also short", dup, "tiny", "", "other", dup}
	content := strings.Join(lines, "\n")

	s := NewScanner(nil, nil)
	findings := s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: content})

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "Code Duplication", f.Title)
	assert.Equal(t, 3, f.Line)
	assert.Contains(t, f.Description, "3")
	assert.Contains(t, f.Description, "7")
}

func TestScanFileDuplicationIgnoresComments(t *testing.T) {
	comment := "// a sufficiently long comment line that repeats"
	content := comment + "\ncode();\n" + comment + "\n"

	s := NewScanner(nil, nil)
	for _, f := range s.ScanFile(FileRecord{Name: "f.js", Path: "f.js", Content: content}) {
		assert.NotEqual(t, "Code Duplication", f.Title)
	}
}

func TestSnippetWindowClamping(t *testing.T) {
	lines := []string{"l1", "l2", "l3", "l4", "l5"}

	assert.Equal(t, "l1\nl2\nl3\nl4\nl5", snippet(lines, 3))
	assert.Equal(t, "l1\nl2\nl3", snippet(lines, 1))
	assert.Equal(t, "l3\nl4\nl5", snippet(lines, 5))
}

func TestLineOfOffset(t *testing.T) {
	content := "aa\nbb\ncc"
	assert.Equal(t, 1, lineOfOffset(content, 0))
	assert.Equal(t, 2, lineOfOffset(content, 3))
	assert.Equal(t, 3, lineOfOffset(content, 6))
}

func TestFindingIDDerivation(t *testing.T) {
	assert.Equal(t, "src/a.js_4_Use_of_eval()", findingID("src/a.js", 4, "Use of eval()"))
}
