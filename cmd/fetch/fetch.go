package fetch

import (
	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/git"
	"github.com/codescope-dev/codescope/pkg/shared/cmdutil"
	"github.com/codescope-dev/codescope/pkg/shared/config"
	"github.com/codescope-dev/codescope/pkg/shared/logger"
)

// RunOptionsFetch holds the arguments for the fetch command.
type RunOptionsFetch struct {
	AuthType     string
	SSHKey       string
	Branch       string
	TargetFolder string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	fetchOptions      RunOptionsFetch
	exampleFetchUsage = `  # Fetching a public repository over HTTPS into the projects home
  codescope fetch https://github.com/octocat/hello-world

  # Fetching a specific branch with HTTP authentication taken from the environment
  codescope fetch --auth-type http -b develop https://github.com/octocat/hello-world

  # Fetching using SSH key authentication
  codescope fetch --auth-type ssh-key --ssh-key ~/.ssh/id_ed25519 ssh://git@github.com/octocat/hello-world.git

  # Fetching using the running SSH agent
  codescope fetch --auth-type ssh-agent ssh://git@github.com/octocat/hello-world.git

  # Fetching into an explicit target folder
  codescope fetch --output /tmp/hello-world https://github.com/octocat/hello-world`
)

// FetchCmd represents the fetch command.
var FetchCmd = &cobra.Command{
	Use:                   "fetch [--auth-type/-a AUTH_TYPE] [--ssh-key/-k PATH] [-b BRANCH] [--output/-o PATH] URL",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleFetchUsage,
	Short:                 "Fetches repository code for later scanning",
	Long: `Fetches repository code with a shallow clone so it can be scanned locally.
Repositories land under the projects home, grouped by host and full name,
unless an explicit output folder is given.`,
	RunE: runFetchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runFetchCommand executes the fetch command.
func runFetchCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmdutil.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-fetch")

	if err := validateFetchArgs(&fetchOptions, args); err != nil {
		logger.Error("invalid fetch arguments", "error", err)
		return err
	}

	cloneURL := args[0]

	targetFolder := fetchOptions.TargetFolder
	if targetFolder == "" {
		var err error
		targetFolder, err = git.TargetFolder(cloneURL)
		if err != nil {
			logger.Error("failed to resolve target folder", "error", err)
			return err
		}
	}

	client, err := git.NewClient(fetchOptions.AuthType, fetchOptions.SSHKey, AppConfig, logger)
	if err != nil {
		logger.Error("failed to set up git client", "error", err)
		return err
	}

	path, err := client.Clone(cloneURL, fetchOptions.Branch, targetFolder)
	if err != nil {
		logger.Error("fetch command failed", "error", err)
		return err
	}

	logger.Info("fetch command completed successfully", "path", path)
	cmd.Println(path)
	return nil
}

func init() {
	FetchCmd.Flags().StringVarP(&fetchOptions.AuthType, "auth-type", "a", "none", "Type of authentication (none, http, ssh-agent, ssh-key).")
	FetchCmd.Flags().StringVarP(&fetchOptions.SSHKey, "ssh-key", "k", "", "Path to an SSH key.")
	FetchCmd.Flags().StringVarP(&fetchOptions.Branch, "branch", "b", "", "Specific branch to fetch (default: the repository default branch).")
	FetchCmd.Flags().StringVarP(&fetchOptions.TargetFolder, "output", "o", "", "Folder to clone into (default: the projects home).")
	FetchCmd.Flags().BoolP("help", "h", false, "Show help for the fetch command.")
}
