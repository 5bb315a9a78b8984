package report

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope-dev/codescope/pkg/analysis"
)

func sampleResult(t *testing.T) *analysis.AnalysisResult {
	t.Helper()
	a := analysis.NewAnalyzer(analysis.Options{Estimator: analysis.DeterministicEstimator{}}, nil)
	return a.AnalyzeFiles([]analysis.FileRecord{
		{Name: "a.js", Path: "a.js", Content: "eval('2+2')\nconsole.log(1)\n"},
	})
}

func TestEnvelopeRoundTrip(t *testing.T) {
	result := sampleResult(t)
	envelope := New("1.2.3", "a.js", result, time.Now().Add(-time.Second))

	assert.Equal(t, ToolName, envelope.Tool)
	assert.NotEmpty(t, envelope.RunID)
	assert.Equal(t, 1, envelope.FilesScanned)
	assert.GreaterOrEqual(t, envelope.DurationMS, int64(1000))

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, envelope.WriteJSON(path))

	loaded, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, envelope.RunID, loaded.RunID)
	assert.Equal(t, result, loaded.Result)
}

// The result JSON layout is the interop contract with any consumer of the
// exported report, so the field names are pinned here.
func TestResultFieldNamesAreStable(t *testing.T) {
	data, err := json.Marshal(sampleResult(t))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"findings", "metrics", "security", "coverage"} {
		assert.Contains(t, raw, key)
	}

	var metrics map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["metrics"], &metrics))
	for _, key := range []string{"totalLines", "totalFiles", "languages", "complexity", "duplicateLines", "testFiles"} {
		assert.Contains(t, metrics, key)
	}

	var findings []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["findings"], &findings))
	require.NotEmpty(t, findings)
	for _, key := range []string{"id", "title", "description", "category", "severity", "file", "line", "codeSnippet", "recommendation", "rule"} {
		assert.Contains(t, findings[0], key)
	}

	var security map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["security"], &security))
	for _, key := range []string{"critical", "high", "medium", "low", "vulnerabilities"} {
		assert.Contains(t, security, key)
	}

	var vulns []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(security["vulnerabilities"], &vulns))
	require.NotEmpty(t, vulns)
	assert.Contains(t, vulns[0], "cweId")

	var coverage map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["coverage"], &coverage))
	for _, key := range []string{"overall", "lines", "functions", "branches", "files"} {
		assert.Contains(t, coverage, key)
	}
}

func TestReadJSONRejectsBrokenInput(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
