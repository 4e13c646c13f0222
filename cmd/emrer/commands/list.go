package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/emrer/cmd/emrer/handlers"
	"github.com/imamik/emrer/internal/platform/awsconf"
	"github.com/imamik/emrer/internal/platform/emr"
)

// List returns the command for listing cluster IDs.
func List(opts *awsconf.Options) *cobra.Command {
	var lo handlers.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cluster IDs by state, creation time and tags",
		Long: `List the IDs of EMR clusters, one per line.

--state on selects starting, bootstrapping, running and waiting
clusters; --state off selects terminating and terminated ones. Both
combine with explicit --states.

--tag keeps clusters that carry any of the given tags, --tag-all keeps
clusters that carry all of them. Tag filters need one DescribeCluster
call per cluster.

Examples:
  emrer list --state on
  emrer list --created-after 2016-01-01T00:00:00Z --tag team=data`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.List(cmd.Context(), lo, *opts)
		},
	}

	cmd.Flags().StringVar(&lo.State, "state", "", "State shorthand: on or off")
	cmd.Flags().StringSliceVar(&lo.States, "states", nil, "Cluster states, e.g. RUNNING,WAITING")
	cmd.Flags().StringVar(&lo.CreatedAfter, "created-after", "", "Only clusters created after this RFC3339 time")
	cmd.Flags().StringVar(&lo.CreatedBefore, "created-before", "", "Only clusters created before this RFC3339 time")
	cmd.Flags().StringArrayVar(&lo.Tags, "tag", nil, "Keep clusters with any of these key=value tags")
	cmd.Flags().StringArrayVar(&lo.TagsAll, "tag-all", nil, "Keep clusters with all of these key=value tags")
	_ = cmd.RegisterFlagCompletionFunc("state", cobra.FixedCompletions(
		[]string{emr.StateOn, emr.StateOff}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
