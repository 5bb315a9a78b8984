package git

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	crssh "golang.org/x/crypto/ssh"

	"github.com/hashicorp/go-hclog"

	"github.com/codescope-dev/codescope/pkg/shared/config"
	"github.com/codescope-dev/codescope/pkg/shared/files"
)

const (
	AuthTypeNone     = "none"
	AuthTypeHTTP     = "http"
	AuthTypeSSHKey   = "ssh-key"
	AuthTypeSSHAgent = "ssh-agent"
)

// Client clones repositories for analysis. It carries the resolved
// authentication method and the clone tuning from the config file.
type Client struct {
	logger       hclog.Logger
	auth         transport.AuthMethod
	timeout      time.Duration
	globalConfig *config.Config
}

// NewClient creates a git client with the requested authentication method.
// HTTP credentials come from CODESCOPE_GIT_USERNAME/CODESCOPE_GIT_TOKEN.
func NewClient(authType, sshKeyPath string, cfg *config.Config, logger hclog.Logger) (*Client, error) {
	auth, err := setupAuth(authType, sshKeyPath, logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		logger:       logger,
		auth:         auth,
		timeout:      config.SetThen(cfg.GitClient.Timeout, 5*time.Minute),
		globalConfig: cfg,
	}, nil
}

func setupAuth(authType, sshKeyPath string, logger hclog.Logger) (transport.AuthMethod, error) {
	switch authType {
	case AuthTypeNone, "":
		return nil, nil

	case AuthTypeHTTP:
		logger.Debug("setting up HTTP basic authentication")
		token := os.Getenv("CODESCOPE_GIT_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("CODESCOPE_GIT_TOKEN must be set for http auth")
		}
		username := os.Getenv("CODESCOPE_GIT_USERNAME")
		if username == "" {
			username = "git"
		}
		return &http.BasicAuth{Username: username, Password: token}, nil

	case AuthTypeSSHKey:
		logger.Debug("setting up SSH key authentication", "key", sshKeyPath)
		expanded, err := files.ExpandPath(sshKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to expand SSH key path %q: %w", sshKeyPath, err)
		}
		auth, err := ssh.NewPublicKeysFromFile("git", expanded, os.Getenv("CODESCOPE_SSH_KEY_PASSWORD"))
		if err != nil {
			return nil, fmt.Errorf("failed to set up SSH key authentication: %w", err)
		}
		auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
			HostKeyCallback: crssh.InsecureIgnoreHostKey(),
		}
		return auth, nil

	case AuthTypeSSHAgent:
		logger.Debug("setting up SSH agent authentication")
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			return nil, fmt.Errorf("failed to set up SSH agent authentication: %w", err)
		}
		auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
			HostKeyCallback: crssh.InsecureIgnoreHostKey(),
		}
		return auth, nil

	default:
		return nil, fmt.Errorf("unknown auth type %q", authType)
	}
}
