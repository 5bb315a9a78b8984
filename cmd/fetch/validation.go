package fetch

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/codescope-dev/codescope/internal/git"
	"github.com/codescope-dev/codescope/pkg/shared/files"
)

// validateFetchArgs validates the arguments provided to the fetch command.
func validateFetchArgs(options *RunOptionsFetch, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a repository URL must be specified")
	}
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	authTypesList := []string{git.AuthTypeNone, git.AuthTypeHTTP, git.AuthTypeSSHKey, git.AuthTypeSSHAgent}
	if !isInList(options.AuthType, authTypesList) {
		return fmt.Errorf("unknown auth-type: %v", options.AuthType)
	}

	if options.AuthType == git.AuthTypeSSHKey && options.SSHKey == "" {
		return fmt.Errorf("you must specify ssh-key with auth-type 'ssh-key'")
	}

	if options.AuthType == git.AuthTypeSSHKey {
		if err := validateSSHKey(options.SSHKey); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(args[0], "ssh://") && !strings.HasPrefix(args[0], "git@") {
		if _, err := url.ParseRequestURI(args[0]); err != nil {
			return fmt.Errorf("invalid repository URL %q: %w", args[0], err)
		}
	}

	return nil
}

// validateSSHKey checks that the key file exists and parses as a private
// key. A missing passphrase is not an error here; the clone step reads it
// from the environment.
func validateSSHKey(sshKey string) error {
	expandedPath, err := files.ExpandPath(sshKey)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", sshKey, err)
	}

	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
	}

	keyData, err := os.ReadFile(expandedPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file: %w", err)
	}

	if _, err := ssh.ParsePrivateKey(keyData); err != nil {
		if _, ok := err.(*ssh.PassphraseMissingError); !ok {
			return fmt.Errorf("invalid SSH key format: %w", err)
		}
	}
	return nil
}

func isInList(value string, list []string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
