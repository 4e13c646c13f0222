package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/emrer/internal/jobflow"
	"github.com/imamik/emrer/internal/platform/awsconf"
)

// Run stages the job's local files and launches the cluster.
//
// The workflow is:
//  1. Load and validate the job file (auto-detects emrer.yaml)
//  2. Resolve AWS settings from flags, environment and shared config
//  3. Check the staging bucket, upload local scripts and build the RunJobFlow request
//  4. Submit the request and print the new cluster ID
//
// If building or submitting the request fails, every object staged so far
// is deleted again.
func Run(ctx context.Context, configPath string, opts awsconf.Options) error {
	job, err := loadJob(configPath)
	if err != nil {
		return err
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

	log.Printf("Preparing job flow %q...", job.Name)
	in, err := translator.RunJobFlowInput(ctx, job)
	if err != nil {
		rollback(ctx, stager, translator.Staged())
		return fmt.Errorf("failed to build job flow: %w", err)
	}
	for _, obj := range translator.Staged() {
		log.Printf("Staged %s as %s", obj.LocalPath, obj.URI())
	}

	clusterID, err := newClusterClient(cfg).RunJobFlow(ctx, in)
	if err != nil {
		rollback(ctx, stager, translator.Staged())
		return err
	}

	log.Printf("Started cluster %s", clusterID)
	fmt.Println(clusterID)
	return nil
}
