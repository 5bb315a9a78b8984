package publish

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/storage"
	"github.com/codescope-dev/codescope/pkg/shared/cmdutil"
	"github.com/codescope-dev/codescope/pkg/shared/config"
	"github.com/codescope-dev/codescope/pkg/shared/files"
	"github.com/codescope-dev/codescope/pkg/shared/logger"
)

// RunOptionsPublish holds the arguments for the publish command.
type RunOptionsPublish struct {
	Bucket    string
	Region    string
	KeyPrefix string
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	publishOptions      RunOptionsPublish
	examplePublishUsage = `  # Publishing a report to the configured S3 bucket
  codescope publish results.json

  # Publishing under a key prefix
  codescope publish --prefix reports/2026 results.json

  # Publishing to an explicit bucket and region
  codescope publish --bucket my-reports --region eu-west-1 results.json`
)

// PublishCmd represents the publish command.
var PublishCmd = &cobra.Command{
	Use:                   "publish [--bucket BUCKET] [--region REGION] [--prefix PREFIX] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               examplePublishUsage,
	Short:                 "Uploads a saved report to S3",
	RunE:                  runPublishCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runPublishCommand executes the publish command.
func runPublishCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmdutil.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-publish")

	if err := validatePublishArgs(&publishOptions, args); err != nil {
		logger.Error("invalid publish arguments", "error", err)
		return err
	}

	bucket := publishOptions.Bucket
	if bucket == "" {
		bucket = AppConfig.Publish.S3Bucket
	}
	region := publishOptions.Region
	if region == "" {
		region = AppConfig.Publish.S3Region
	}

	publisher, err := storage.NewS3Publisher(bucket, region, logger)
	if err != nil {
		logger.Error("failed to set up S3 publisher", "error", err)
		return err
	}

	location, err := publisher.Publish(args[0], publishOptions.KeyPrefix)
	if err != nil {
		logger.Error("publish command failed", "error", err)
		return err
	}

	logger.Info("publish command completed successfully", "location", location)
	cmd.Println(location)
	return nil
}

// validatePublishArgs validates the arguments provided to the publish command.
func validatePublishArgs(options *RunOptionsPublish, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a path to a report file must be specified")
	}
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	expandedPath, err := files.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", args[0], err)
	}
	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
	}
	args[0] = expandedPath

	return nil
}

func init() {
	PublishCmd.Flags().StringVar(&publishOptions.Bucket, "bucket", "", "S3 bucket to upload to (default: the configured bucket).")
	PublishCmd.Flags().StringVar(&publishOptions.Region, "region", "", "AWS region of the bucket (default: the configured region).")
	PublishCmd.Flags().StringVar(&publishOptions.KeyPrefix, "prefix", "", "Key prefix prepended to the uploaded object name.")
	PublishCmd.Flags().BoolP("help", "h", false, "Show help for the publish command.")
}
