// Package logger builds the name-spaced hclog loggers the commands run with.
package logger

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/codescope-dev/codescope/pkg/shared/config"
)

const levelEnvVar = "CODESCOPE_LOG_LEVEL"

// Options tunes logger construction. The zero value resolves the level from
// the config file, then the CODESCOPE_LOG_LEVEL env variable, then info.
type Options struct {
	Level  string
	Output io.Writer
}

// NewLogger creates a logger for one command or subsystem, resolving the
// level from the config.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	opts := Options{}
	if cfg != nil {
		opts.Level = cfg.Logger.Level
	}
	return New(name, opts)
}

// New creates a logger with explicit options.
func New(name string, opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      output,
		Level:       resolveLevel(opts.Level),
	})
}

// resolveLevel maps a configured level name onto an hclog level. An empty
// name falls through to the env variable; anything unrecognized means info.
func resolveLevel(level string) hclog.Level {
	if level == "" {
		level = os.Getenv(levelEnvVar)
	}
	if parsed := hclog.LevelFromString(level); parsed != hclog.NoLevel {
		return parsed
	}
	return hclog.Info
}
