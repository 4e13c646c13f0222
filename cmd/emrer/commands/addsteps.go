package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/emrer/cmd/emrer/handlers"
	"github.com/imamik/emrer/internal/platform/awsconf"
)

// AddSteps returns the command that submits a job's steps to a running cluster.
func AddSteps(opts *awsconf.Options) *cobra.Command {
	var (
		configPath string
		clusterID  string
	)

	cmd := &cobra.Command{
		Use:   "add-steps",
		Short: "Add the job's steps to a running cluster",
		Long: `Stage and submit the steps of a job file to an existing cluster.

Bootstrap actions and configurations of the job are ignored. The new
step IDs are printed on stdout.

Examples:
  emrer add-steps --cluster-id j-2AXXXXXXGAPLF -c backfill.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AddSteps(cmd.Context(), configPath, clusterID, *opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to job file (default: emrer.yaml)")
	cmd.Flags().StringVar(&clusterID, "cluster-id", "", "ID of the cluster to add the steps to")
	_ = cmd.MarkFlagRequired("cluster-id")

	return cmd
}
