package storage

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	cases := []struct {
		name     string
		prefix   string
		filePath string
		want     string
	}{
		{"no prefix", "", "/tmp/results/report.json", "report.json"},
		{"with prefix", "codescope/runs", "/tmp/report.json", "codescope/runs/report.json"},
		{"trailing slash prefix", "runs/", "report.sarif", "runs/report.sarif"},
		{"windows path", "runs", `C:\results\report.json`, "runs/report.json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ObjectKey(tc.prefix, tc.filePath))
		})
	}
}

func TestNewS3PublisherRequiresBucket(t *testing.T) {
	_, err := NewS3Publisher("", "eu-west-1", hclog.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}
