package config

import (
	"fmt"
)

// ValidateConfig rejects configuration values the commands cannot act on.
func ValidateConfig(cfg *Config) error {
	switch cfg.Coverage.Mode {
	case "", CoverageModeDeterministic, CoverageModeJitter:
	default:
		return fmt.Errorf("unknown coverage mode %q, expected %q or %q",
			cfg.Coverage.Mode, CoverageModeDeterministic, CoverageModeJitter)
	}

	if cfg.Scan.MaxFileSize < 0 {
		return fmt.Errorf("scan.max_file_size must not be negative")
	}
	if cfg.Scan.MaxFiles < 0 {
		return fmt.Errorf("scan.max_files must not be negative")
	}
	if cfg.Scan.Jobs < 0 {
		return fmt.Errorf("scan.jobs must not be negative")
	}
	if cfg.GitClient.Depth < 0 {
		return fmt.Errorf("git_client.depth must not be negative")
	}

	return nil
}
