package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateReportArgs(t *testing.T) {
	reportFile := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(reportFile, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("missing path", func(t *testing.T) {
		opts := RunOptionsReport{ReportFormat: FormatSarif}
		err := validateReportArgs(&opts, nil)
		if err == nil || err.Error() != "a path to a saved JSON report must be specified" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		opts := RunOptionsReport{ReportFormat: "pdf"}
		err := validateReportArgs(&opts, []string{reportFile})
		if err == nil || err.Error() != "unknown report format: pdf" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("template only valid for html", func(t *testing.T) {
		opts := RunOptionsReport{ReportFormat: FormatSarif, TemplateFile: "custom.html"}
		err := validateReportArgs(&opts, []string{reportFile})
		if err == nil {
			t.Fatal("expected error for template with sarif format")
		}
	})

	t.Run("missing report file", func(t *testing.T) {
		opts := RunOptionsReport{ReportFormat: FormatHTML}
		err := validateReportArgs(&opts, []string{"/nonexistent/results.json"})
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("valid arguments", func(t *testing.T) {
		opts := RunOptionsReport{ReportFormat: FormatHTML}
		if err := validateReportArgs(&opts, []string{reportFile}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
