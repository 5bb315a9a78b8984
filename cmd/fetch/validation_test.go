package fetch

import (
	"testing"
)

func TestValidateFetchArgs(t *testing.T) {
	t.Run("missing URL", func(t *testing.T) {
		opts := RunOptionsFetch{AuthType: "none"}
		err := validateFetchArgs(&opts, nil)
		if err == nil || err.Error() != "a repository URL must be specified" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("too many positional arguments", func(t *testing.T) {
		opts := RunOptionsFetch{AuthType: "none"}
		err := validateFetchArgs(&opts, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error for extra args")
		}
	})

	t.Run("unknown auth type", func(t *testing.T) {
		opts := RunOptionsFetch{AuthType: "kerberos"}
		err := validateFetchArgs(&opts, []string{"https://github.com/octocat/hello-world"})
		if err == nil || err.Error() != "unknown auth-type: kerberos" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("ssh-key auth requires a key path", func(t *testing.T) {
		opts := RunOptionsFetch{AuthType: "ssh-key"}
		err := validateFetchArgs(&opts, []string{"https://github.com/octocat/hello-world"})
		if err == nil || err.Error() != "you must specify ssh-key with auth-type 'ssh-key'" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid URL", func(t *testing.T) {
		opts := RunOptionsFetch{AuthType: "none"}
		err := validateFetchArgs(&opts, []string{"not a url"})
		if err == nil {
			t.Fatal("expected error for malformed URL")
		}
	})

	t.Run("valid https URL", func(t *testing.T) {
		opts := RunOptionsFetch{AuthType: "none"}
		if err := validateFetchArgs(&opts, []string{"https://github.com/octocat/hello-world"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("ssh URL skips URL parsing", func(t *testing.T) {
		opts := RunOptionsFetch{AuthType: "ssh-agent"}
		if err := validateFetchArgs(&opts, []string{"ssh://git@github.com/octocat/hello-world.git"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
