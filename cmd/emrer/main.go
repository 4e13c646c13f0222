// Package main is the entry point for the emrer CLI.
//
// emrer launches Amazon EMR clusters from YAML job files. Local bootstrap
// scripts and step files are uploaded to S3 first, then the job is
// translated into a single RunJobFlow request.
//
// Commands: init, run, plan, add-steps, list.
//
// For detailed usage information, run:
//
//	emrer --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/emrer/cmd/emrer/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
