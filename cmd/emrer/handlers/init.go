package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imamik/emrer/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive job wizard.
	runWizard = config.RunWizard

	// writeJobFile writes the job to a file.
	writeJobFile = config.WriteFile
)

// Init runs the job wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	job := result.ToJob()

	if err := writeJobFile(job, outputPath); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}

	printInitSuccess(outputPath, job)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("emrer - EMR clusters from YAML")
	fmt.Println("==============================")
	fmt.Println()
	fmt.Println("This wizard creates a job file with a single cluster definition.")
	fmt.Println("Add bootstrap actions, steps and configurations to it afterwards.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, job *config.Job) {
	fmt.Println()
	fmt.Println("Job file saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Job Summary")
	fmt.Println("-----------")
	fmt.Printf("  Name:          %s\n", job.Name)
	fmt.Printf("  Release:       %s\n", job.ReleaseLabel)
	fmt.Printf("  Instances:     %d x %s\n", job.Instances.Count, job.Instances.MasterType)
	if len(job.Applications) > 0 {
		fmt.Printf("  Applications:  %s\n", strings.Join(job.Applications, ", "))
	}
	if job.S3Bucket != "" {
		fmt.Printf("  Staging:       s3://%s/%s\n", job.S3Bucket, job.S3Prefix)
	}
	if job.LogURI != "" {
		fmt.Printf("  Logs:          %s\n", job.LogURI)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Add steps and bootstrap actions to %s\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Check the request without launching anything:")
	fmt.Printf("     emrer plan -c %s\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Launch the cluster:")
	fmt.Printf("     emrer run -c %s\n", outputPath)
	fmt.Println()
}
