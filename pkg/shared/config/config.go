package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// ValidateConfigPath checks that the given path points at a readable file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes a YAML file into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the application configuration from the given path. A
// missing file is not an error: the zero config with defaults applied keeps
// the CLI usable without any setup.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	return config, nil
}

// GetCodescopeHome returns the working directory for cloned projects and
// generated reports. The CODESCOPE_HOME env variable overrides the default
// under the user's home directory.
func GetCodescopeHome() string {
	if env := os.Getenv("CODESCOPE_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		panic("unable to get home folder")
	}
	return filepath.Join(home, ".codescope")
}

// GetProjectsHome returns the folder fetched repositories are cloned into.
func GetProjectsHome() string {
	return filepath.Join(GetCodescopeHome(), "projects")
}

// GetResultsHome returns the folder analysis reports are written into.
func GetResultsHome() string {
	return filepath.Join(GetCodescopeHome(), "results")
}
