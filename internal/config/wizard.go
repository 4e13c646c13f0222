package config

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Name         string
	ReleaseLabel string
	S3Bucket     string
	S3Prefix     string
	LogURI       string
	InstanceType string
	Count        int
	Applications []string
}

var bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// RunWizard asks for the handful of values a starter job file needs.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		ReleaseLabel: DefaultReleaseLabel(),
		S3Prefix:     "emrer/",
		InstanceType: DefaultInstanceType,
		Count:        3,
		Applications: []string{"Hadoop"},
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("Shown in the EMR console").
				Placeholder("my-cluster").
				Value(&result.Name).
				Validate(validateJobName),

			huh.NewInput().
				Title("Release label").
				Description("EMR release to launch").
				Value(&result.ReleaseLabel),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Staging bucket").
				Description("Local scripts are uploaded here before the cluster starts").
				Placeholder("my-bucket").
				Value(&result.S3Bucket).
				Validate(validateBucketName),

			huh.NewInput().
				Title("Staging prefix").
				Description("Key prefix for staged scripts").
				Value(&result.S3Prefix),

			huh.NewInput().
				Title("Log URI (optional)").
				Placeholder("s3://my-bucket/logs/").
				Value(&result.LogURI).
				Validate(validateLogURI),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Instance type").
				Options(
					huh.NewOption("m3.xlarge", "m3.xlarge"),
					huh.NewOption("m4.large", "m4.large"),
					huh.NewOption("m5.xlarge", "m5.xlarge"),
					huh.NewOption("r5.xlarge", "r5.xlarge"),
				).
				Value(&result.InstanceType),

			huh.NewSelect[int]().
				Title("Number of instances").
				Description("Master plus core nodes").
				Options(
					huh.NewOption("1 (master only)", 1),
					huh.NewOption("3", 3),
					huh.NewOption("5", 5),
					huh.NewOption("10", 10),
				).
				Value(&result.Count),

			huh.NewMultiSelect[string]().
				Title("Applications").
				Options(
					huh.NewOption("Hadoop", "Hadoop"),
					huh.NewOption("Hive", "Hive"),
					huh.NewOption("Pig", "Pig"),
					huh.NewOption("Spark", "Spark"),
				).
				Value(&result.Applications),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToJob converts the wizard result to a job with defaults applied.
func (r *WizardResult) ToJob() *Job {
	job := &Job{
		Name:         r.Name,
		ReleaseLabel: r.ReleaseLabel,
		LogURI:       r.LogURI,
		S3Bucket:     r.S3Bucket,
		S3Prefix:     r.S3Prefix,
		Applications: r.Applications,
		Instances: Instances{
			MasterType: r.InstanceType,
			CoreType:   r.InstanceType,
			Count:      r.Count,
		},
		Tags: KeyValues{{Key: "created-by", Value: "emrer"}},
	}
	applyDefaults(job)
	return job
}

func validateJobName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	if len(s) > 256 {
		return fmt.Errorf("name must be at most 256 characters")
	}
	return nil
}

func validateBucketName(s string) error {
	if !bucketNamePattern.MatchString(s) {
		return fmt.Errorf("not a valid S3 bucket name")
	}
	return nil
}

func validateLogURI(s string) error {
	if s != "" && !strings.HasPrefix(s, "s3://") {
		return fmt.Errorf("must start with s3://")
	}
	return nil
}
