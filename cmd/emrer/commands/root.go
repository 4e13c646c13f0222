// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/emrer/internal/platform/awsconf"
)

// Root returns the root command for the emrer CLI.
//
// The root command carries the AWS flags shared by every command that talks
// to AWS and organizes the command hierarchy.
func Root() *cobra.Command {
	var opts awsconf.Options

	cmd := &cobra.Command{
		Use:           "emrer",
		Short:         "Launch EMR clusters from YAML job files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Region, "region", "", "AWS region (default: from AWS_REGION or shared config)")
	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "Shared config profile to use")
	cmd.PersistentFlags().StringVar(&opts.EndpointURL, "endpoint-url", "", "Override the AWS service endpoint")

	// Job commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Run(&opts))
	cmd.AddCommand(AddSteps(&opts))
	cmd.AddCommand(List(&opts))

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
