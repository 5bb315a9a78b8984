package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func validOptions() RunOptionsScan {
	return RunOptionsScan{ReportFormat: FormatJSON, OutputPath: "-"}
}

func TestValidateScanArgs(t *testing.T) {
	t.Run("too many positional arguments", func(t *testing.T) {
		opts := validOptions()
		err := validateScanArgs(&opts, []string{"a", "b"})
		if err == nil || err.Error() != "invalid argument(s) received, only one positional argument is allowed" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no target selected", func(t *testing.T) {
		opts := validOptions()
		err := validateScanArgs(&opts, nil)
		if err == nil {
			t.Fatal("expected error for missing target")
		}
	})

	t.Run("remote flags are mutually exclusive", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "octocat/hello-world"
		opts.ArchiveURL = "https://example.com/src.tar.gz"
		err := validateScanArgs(&opts, nil)
		if err == nil || err.Error() != "the 'github', 'gitlab' and 'archive-url' flags are mutually exclusive" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("local path cannot combine with remote flag", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "octocat/hello-world"
		err := validateScanArgs(&opts, []string{"."})
		if err == nil {
			t.Fatal("expected error for mixed targets")
		}
	})

	t.Run("github repo needs owner and name", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "hello-world"
		err := validateScanArgs(&opts, nil)
		if err == nil {
			t.Fatal("expected error for malformed repo")
		}
	})

	t.Run("gitlab-url requires gitlab", func(t *testing.T) {
		opts := validOptions()
		opts.GitLabURL = "https://gitlab.example.com"
		err := validateScanArgs(&opts, nil)
		if err == nil || err.Error() != "the 'gitlab-url' flag requires the 'gitlab' flag" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "octocat/hello-world"
		opts.ReportFormat = "xml"
		err := validateScanArgs(&opts, nil)
		if err == nil || err.Error() != "unknown report format: xml" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("template only valid for html", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "octocat/hello-world"
		opts.TemplateFile = "custom.html"
		err := validateScanArgs(&opts, nil)
		if err == nil {
			t.Fatal("expected error for template with json format")
		}
	})

	t.Run("unknown fail-on severity", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "octocat/hello-world"
		opts.FailOn = "urgent"
		err := validateScanArgs(&opts, nil)
		if err == nil || err.Error() != "unknown fail-on severity: urgent" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative jobs", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "octocat/hello-world"
		opts.Jobs = -1
		err := validateScanArgs(&opts, nil)
		if err == nil {
			t.Fatal("expected error for negative jobs")
		}
	})

	t.Run("valid local directory", func(t *testing.T) {
		opts := validOptions()
		dir := t.TempDir()
		if err := validateScanArgs(&opts, []string{dir}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("valid local file", func(t *testing.T) {
		opts := validOptions()
		file := filepath.Join(t.TempDir(), "app.js")
		if err := os.WriteFile(file, []byte("var x = 1;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := validateScanArgs(&opts, []string{file}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing local path", func(t *testing.T) {
		opts := validOptions()
		err := validateScanArgs(&opts, []string{"/nonexistent/project"})
		if err == nil {
			t.Fatal("expected error for missing path")
		}
	})

	t.Run("valid remote target with fail-on", func(t *testing.T) {
		opts := validOptions()
		opts.GitHubRepo = "octocat/hello-world"
		opts.FailOn = "high"
		if err := validateScanArgs(&opts, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSeverityRank(t *testing.T) {
	ranks := map[string]int{"critical": 4, "high": 3, "medium": 2, "low": 1, "bogus": 0, "": 0}
	for severity, want := range ranks {
		if got := severityRank(severity); got != want {
			t.Errorf("severityRank(%q) = %d, want %d", severity, got, want)
		}
	}
}
