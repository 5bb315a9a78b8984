package git

import (
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope-dev/codescope/pkg/shared/config"
)

func TestTargetFolder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CODESCOPE_HOME", home)

	folder, err := TargetFolder("https://github.com/OctoCat/Hello-World")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects", "github.com", "octocat", "hello-world"), folder)
}

func TestTargetFolderInvalidURL(t *testing.T) {
	_, err := TargetFolder("://not-a-url")
	require.Error(t, err)
}

func TestSetupAuth(t *testing.T) {
	logger := hclog.NewNullLogger()

	t.Run("none yields no auth method", func(t *testing.T) {
		auth, err := setupAuth(AuthTypeNone, "", logger)
		require.NoError(t, err)
		assert.Nil(t, auth)
	})

	t.Run("http requires a token", func(t *testing.T) {
		t.Setenv("CODESCOPE_GIT_TOKEN", "")
		_, err := setupAuth(AuthTypeHTTP, "", logger)
		require.Error(t, err)
	})

	t.Run("http uses env credentials", func(t *testing.T) {
		t.Setenv("CODESCOPE_GIT_TOKEN", "secret")
		t.Setenv("CODESCOPE_GIT_USERNAME", "octocat")
		auth, err := setupAuth(AuthTypeHTTP, "", logger)
		require.NoError(t, err)
		assert.NotNil(t, auth)
	})

	t.Run("unknown auth type", func(t *testing.T) {
		_, err := setupAuth("kerberos", "", logger)
		require.Error(t, err)
	})
}

func TestNewClientDefaultsTimeout(t *testing.T) {
	client, err := NewClient(AuthTypeNone, "", &config.Config{}, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Greater(t, int64(client.timeout), int64(0))
}
