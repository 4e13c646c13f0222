package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/emrer/cmd/emrer/handlers"
)

// Plan returns the command that shows the request run would submit.
func Plan() *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the request without launching anything",
		Long: `Translate the job file and print the RunJobFlow request.

Nothing is uploaded and no AWS call is made. Local files are only
checked for existence, and the S3 locations they would be staged at
are listed.

Without --output, a terminal gets a styled summary and a pipe gets JSON.
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath, output)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to job file (default: emrer.yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: text or json")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{handlers.OutputText, handlers.OutputJSON}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
