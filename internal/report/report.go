// Package report wraps an analysis result in an export envelope and writes
// the supported output formats. The envelope adds run metadata around the
// result; the result's own field names stay untouched so existing consumers
// keep parsing it.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/codescope-dev/codescope/pkg/analysis"
	"github.com/codescope-dev/codescope/pkg/shared/files"
)

const ToolName = "codescope"

// Envelope is the top-level JSON export payload.
type Envelope struct {
	Tool         string                   `json:"tool"`
	Version      string                   `json:"version"`
	RunID        string                   `json:"runId"`
	Target       string                   `json:"target"`
	StartedAt    time.Time                `json:"startedAt"`
	DurationMS   int64                    `json:"durationMs"`
	FilesScanned int                      `json:"filesScanned"`
	Result       *analysis.AnalysisResult `json:"result"`
}

// New assembles an envelope around a finished analysis.
func New(version, target string, result *analysis.AnalysisResult, startedAt time.Time) *Envelope {
	return &Envelope{
		Tool:         ToolName,
		Version:      version,
		RunID:        uuid.New().String(),
		Target:       target,
		StartedAt:    startedAt.UTC(),
		DurationMS:   time.Since(startedAt).Milliseconds(),
		FilesScanned: result.Metrics.TotalFiles,
		Result:       result,
	}
}

// WriteJSON pretty-prints the envelope to the given path, or to stdout when
// the path is "-".
func (e *Envelope) WriteJSON(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return files.WriteFileAtomic(path, data)
}

// ReadJSON loads an envelope written by WriteJSON, for commands that
// re-render an earlier run into another format.
func ReadJSON(path string) (*Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %q: %w", path, err)
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse report %q: %w", path, err)
	}
	if envelope.Result == nil {
		return nil, fmt.Errorf("report %q carries no analysis result", path)
	}
	return &envelope, nil
}
