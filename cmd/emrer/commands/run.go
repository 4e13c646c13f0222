package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/emrer/cmd/emrer/handlers"
	"github.com/imamik/emrer/internal/platform/awsconf"
)

// Run returns the command that launches a cluster from a job file.
//
// Optional flags:
//
//	--config, -c: Path to job file (default: auto-detect emrer.yaml)
//
// Environment variables:
//
//	AWS_REGION, AWS_PROFILE, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN
func Run(opts *awsconf.Options) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stage local files and launch the cluster",
		Long: `Launch an EMR cluster from a job file.

Local scripts referenced by bootstrap actions and steps are uploaded to
S3 first. The job is then submitted as a single RunJobFlow request and
the new cluster ID is printed on stdout. If the request fails, the
uploaded objects are removed again.

Examples:
  # Launch using emrer.yaml in the current directory
  emrer run

  # Launch a specific job in another region
  emrer run -c nightly.yaml --region eu-west-1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), configPath, *opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to job file (default: emrer.yaml)")

	return cmd
}
