package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope-dev/codescope/pkg/analysis"
	"github.com/codescope-dev/codescope/pkg/shared/config"
)

func TestBuildCatalog(t *testing.T) {
	t.Run("built-ins only", func(t *testing.T) {
		catalog, err := buildCatalog(&config.Config{}, nil)
		require.NoError(t, err)
		assert.Len(t, catalog.Security(), 6)
		assert.Len(t, catalog.Quality(), 3)
	})

	t.Run("extra rule file extends the catalog", func(t *testing.T) {
		ruleFile := filepath.Join(t.TempDir(), "rules.yml")
		err := os.WriteFile(ruleFile, []byte(`rules:
  - title: Alert Usage
    pattern: alert\s*\(
    category: quality
    severity: low
`), 0o644)
		require.NoError(t, err)

		catalog, err := buildCatalog(&config.Config{}, []string{ruleFile})
		require.NoError(t, err)
		assert.Len(t, catalog.Quality(), 4)

		_, ok := catalog.FindByTitle("Alert Usage")
		assert.True(t, ok)
	})

	t.Run("missing rule file fails", func(t *testing.T) {
		_, err := buildCatalog(&config.Config{}, []string{"/nonexistent/rules.yml"})
		require.Error(t, err)
	})
}

func TestBuildEstimator(t *testing.T) {
	cfg := &config.Config{}
	assert.IsType(t, analysis.DeterministicEstimator{}, buildEstimator(cfg))

	cfg.Coverage.Mode = config.CoverageModeJitter
	assert.IsType(t, &analysis.JitterEstimator{}, buildEstimator(cfg))
}

func TestJobCount(t *testing.T) {
	cfg := &config.Config{}

	opts := &RunOptionsScan{}
	assert.Equal(t, 1, jobCount(opts, cfg), "defaults to sequential")

	cfg.Scan.Jobs = 4
	assert.Equal(t, 4, jobCount(opts, cfg), "config value applies")

	opts.Jobs = 8
	assert.Equal(t, 8, jobCount(opts, cfg), "flag wins over config")
}

func TestSplitRepo(t *testing.T) {
	owner, repo := splitRepo("octocat/hello-world")
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", repo)

	owner, repo = splitRepo("hello-world")
	assert.Equal(t, "hello-world", owner)
	assert.Equal(t, "", repo)
}

func TestCountAtOrAbove(t *testing.T) {
	result := &analysis.AnalysisResult{
		Findings: []analysis.Finding{
			{Severity: analysis.SeverityCritical},
			{Severity: analysis.SeverityHigh},
			{Severity: analysis.SeverityMedium},
			{Severity: analysis.SeverityLow},
			{Severity: analysis.SeverityLow},
		},
	}

	assert.Equal(t, 1, countAtOrAbove(result, "critical"))
	assert.Equal(t, 2, countAtOrAbove(result, "high"))
	assert.Equal(t, 3, countAtOrAbove(result, "medium"))
	assert.Equal(t, 5, countAtOrAbove(result, "low"))
}
