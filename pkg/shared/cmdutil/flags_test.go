package cmdutil

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "json", "")
	flags.Int("jobs", 1, "")

	assert.False(t, HasFlags(flags), "no flag was set")

	require.NoError(t, flags.Set("format", "sarif"))
	assert.True(t, HasFlags(flags))
}
