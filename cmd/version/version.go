package version

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/pkg/shared/config"
)

// Build metadata, stamped via -ldflags at release time.
var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// Versions holds version information for the application.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		Run: func(cmd *cobra.Command, args []string) {
			versionInfo := Versions{
				Version:       CoreVersion,
				GolangVersion: GolangVersion,
				BuildTime:     BuildTime,
			}
			printVersionInfo(&versionInfo, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON.")
	return cmd
}

// printVersionInfo prints the version information in text or JSON form.
func printVersionInfo(versionInfo *Versions, asJSON bool) {
	if asJSON {
		data, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal version info: %v\n", err)
			return
		}
		fmt.Println(string(data))
		return
	}
	fmt.Printf("Version: %s\nGolang version: %s\nBuild time: %s\n",
		versionInfo.Version, versionInfo.GolangVersion, versionInfo.BuildTime)
}
