package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/cmd/fetch"
	"github.com/codescope-dev/codescope/cmd/publish"
	reportcmd "github.com/codescope-dev/codescope/cmd/report"
	"github.com/codescope-dev/codescope/cmd/scan"
	"github.com/codescope-dev/codescope/cmd/version"
	"github.com/codescope-dev/codescope/pkg/shared/config"
	sharederrors "github.com/codescope-dev/codescope/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "codescope [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Codescope is a static pattern-matching code analysis tool.",
		Long: `Codescope analyses source code for security and quality issues using a
	regex pattern catalog and structural heuristics, and aggregates the findings
	into project reports with metrics, a security summary and estimated coverage.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(fetch.FetchCmd)
	rootCmd.AddCommand(reportcmd.ReportCmd)
	rootCmd.AddCommand(publish.PublishCmd)
}

// Execute runs the root command and maps errors to exit codes. Findings at
// or above the scan --fail-on threshold exit with 2 so CI pipelines can tell
// policy violations from operational failures.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		var thresholdErr *sharederrors.ThresholdExceededError
		if errors.As(err, &thresholdErr) {
			return 2
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("failed to initialize config - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	version.Init(AppConfig)
	scan.Init(AppConfig)
	scan.Version = version.CoreVersion
	fetch.Init(AppConfig)
	reportcmd.Init(AppConfig)
	publish.Init(AppConfig)
}
