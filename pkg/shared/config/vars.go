package config

import (
	"time"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	HttpClient HttpClient `yaml:"http_client"`
	GitClient  GitClient  `yaml:"git_client"`
	Scan       Scan       `yaml:"scan"`
	Coverage   Coverage   `yaml:"coverage"`
	Rules      Rules      `yaml:"rules"`
	Publish    Publish    `yaml:"publish"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type HttpClient struct {
	Debug            bool            `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TlsClientConfig  TlsClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TlsClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type GitClient struct {
	Depth       int           `yaml:"depth"`
	Timeout     time.Duration `yaml:"timeout"`
	InsecureTLS *bool         `yaml:"insecure_tls"`
}

// Scan bounds what the file-sourcing layer hands to the analysis engine.
// The engine itself imposes no caps.
type Scan struct {
	MaxFileSize       int64    `yaml:"max_file_size"`
	MaxFiles          int      `yaml:"max_files"`
	IncludeExtensions []string `yaml:"include_extensions"`
	ExcludeExtensions []string `yaml:"exclude_extensions"`
	Jobs              int      `yaml:"jobs"`
	FoldTestFileNames bool     `yaml:"fold_test_file_names"`
}

// Coverage selects the coverage estimation strategy. Mode "deterministic"
// reports the plain heuristic base; mode "jitter" adds bounded randomness,
// reproducibly when a non-zero seed is set.
type Coverage struct {
	Mode string `yaml:"mode"`
	Seed int64  `yaml:"seed"`
}

// Rules points at extra YAML rule files merged after the built-in catalog.
type Rules struct {
	Files []string `yaml:"files"`
}

type Publish struct {
	S3Bucket string `yaml:"s3_bucket"`
	S3Region string `yaml:"s3_region"`
}

const (
	CoverageModeDeterministic = "deterministic"
	CoverageModeJitter        = "jitter"
)
