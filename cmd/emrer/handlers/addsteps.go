package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/emrer/internal/jobflow"
	"github.com/imamik/emrer/internal/platform/awsconf"
)

// AddSteps submits the job file's steps to a running cluster and prints the
// new step IDs. Bootstrap actions and configurations are ignored.
func AddSteps(ctx context.Context, configPath, clusterID string, opts awsconf.Options) error {
	if clusterID == "" {
		return fmt.Errorf("cluster ID is required")
	}

	job, err := loadJob(configPath)
	if err != nil {
		return err
	}
	if len(job.Steps) == 0 {
		log.Printf("Job %q has no steps, nothing to add", job.Name)
		return nil
	}

	cfg, err := loadAWSConfig(ctx, opts.FromEnv())
	if err != nil {
		return err
	}

	stager := newStager(cfg)
	stager.NotifyRetries(logUploadRetry)
	if err := checkStagingBucket(ctx, stager, job.S3Bucket); err != nil {
		return err
	}
	translator := jobflow.New(stager, jobflow.WithLogger(newWarningLogger()))

	steps, err := translator.Steps(ctx, job.Steps, jobflow.Location{Bucket: job.S3Bucket, Prefix: job.S3Prefix})
	if err != nil {
		rollback(ctx, stager, translator.Staged())
		return fmt.Errorf("failed to build steps: %w", err)
	}
	if len(steps) == 0 {
		log.Printf("All steps of job %q were skipped, nothing to add", job.Name)
		return nil
	}

	stepIDs, err := newClusterClient(cfg).AddJobFlowSteps(ctx, clusterID, steps)
	if err != nil {
		rollback(ctx, stager, translator.Staged())
		return err
	}

	log.Printf("Added %d step(s) to cluster %s", len(stepIDs), clusterID)
	for _, id := range stepIDs {
		fmt.Println(id)
	}
	return nil
}
