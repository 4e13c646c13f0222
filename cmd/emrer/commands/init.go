package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/emrer/cmd/emrer/handlers"
	"github.com/imamik/emrer/internal/config"
)

// Init returns the command for interactively creating a job file.
//
// Flags:
//
//	--output, -o: Path to output file (default "emrer.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a job file",
		Long: `Interactively create a job file.

This command asks for the basics of a cluster:

  - Job name and EMR release
  - S3 bucket and prefix used to stage local scripts
  - Log location
  - Instance type and count
  - Applications to install

Steps, bootstrap actions and configurations are added by editing the
generated YAML.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
