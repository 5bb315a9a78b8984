package errors

import (
	"fmt"
)

// ThresholdExceededError signals that findings at or above the configured
// severity were detected, so gating commands can exit non-zero while still
// writing the full report.
type ThresholdExceededError struct {
	Severity string
	Count    int
}

func (e *ThresholdExceededError) Error() string {
	return fmt.Sprintf("found %d finding(s) at or above severity %q", e.Count, e.Severity)
}

// NewThresholdExceededError creates a ThresholdExceededError.
func NewThresholdExceededError(severity string, count int) error {
	return &ThresholdExceededError{Severity: severity, Count: count}
}

// SourceError wraps a failure while materializing files for analysis,
// keeping the source kind (dir, git, github, gitlab, archive) for logs.
type SourceError struct {
	Kind   string
	Target string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source %q: %v", e.Kind, e.Target, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a SourceError.
func NewSourceError(kind, target string, err error) error {
	return &SourceError{Kind: kind, Target: target, Err: err}
}
