package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsemr "github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/emrer/internal/platform/awsconf"
	"github.com/imamik/emrer/internal/platform/emr"
	"github.com/imamik/emrer/internal/util/retry"
)

// saveAndRestoreFactories saves and restores all factory functions.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadJobFile := loadJobFile
	origFindConfigFile := findConfigFile
	origLoadAWSConfig := loadAWSConfig
	origNewStager := newStager
	origNewClusterClient := newClusterClient
	origFileExists := fileExists
	origRunWizard := runWizard
	origWriteJobFile := writeJobFile

	t.Cleanup(func() {
		loadJobFile = origLoadJobFile
		findConfigFile = origFindConfigFile
		loadAWSConfig = origLoadAWSConfig
		newStager = origNewStager
		newClusterClient = origNewClusterClient
		fileExists = origFileExists
		runWizard = origRunWizard
		writeJobFile = origWriteJobFile
	})
}

// fakeStager records uploads and deletions.
type fakeStager struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
	deleteErr error
	bucketErr error
	missing   bool
	notify    retry.Notify
}

func (f *fakeStager) Upload(_ context.Context, _, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, bucket+"/"+key)
	return nil
}

func (f *fakeStager) BucketExists(_ context.Context, _ string) (bool, error) {
	if f.bucketErr != nil {
		return false, f.bucketErr
	}
	return !f.missing, nil
}

func (f *fakeStager) DeleteObject(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, bucket+"/"+key)
	return f.deleteErr
}

func (f *fakeStager) NotifyRetries(fn retry.Notify) {
	f.notify = fn
}

// mockClusterClient is a testify mock of ClusterClient.
type mockClusterClient struct {
	mock.Mock
}

func (m *mockClusterClient) RunJobFlow(ctx context.Context, in *awsemr.RunJobFlowInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockClusterClient) AddJobFlowSteps(ctx context.Context, clusterID string, steps []types.StepConfig) ([]string, error) {
	args := m.Called(ctx, clusterID, steps)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *mockClusterClient) ListClusterIDs(ctx context.Context, f emr.Filter) ([]string, error) {
	args := m.Called(ctx, f)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// useFakeAWS wires the fakes into the factories.
func useFakeAWS(t *testing.T, stager *fakeStager, cluster *mockClusterClient) {
	t.Helper()
	saveAndRestoreFactories(t)

	loadAWSConfig = func(_ context.Context, _ awsconf.Options) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
	newStager = func(aws.Config) Stager { return stager }
	newClusterClient = func(aws.Config) ClusterClient { return cluster }
}

// writeJob writes a job file plus a local bootstrap script next to it and
// returns the job file path.
func writeJob(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bootstrap.sh"), []byte("#!/bin/sh\n"), 0600))

	path := filepath.Join(dir, "emrer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	t.Chdir(dir)
	return path
}

const testJob = `
name: nightly
s3bucket: stage
s3prefix: jobs/
bootstrap_actions:
  - script: bootstrap.sh
steps:
  - name: wordcount
    exec: s3://code/app.jar
    args: in out
tags:
  team: data
`

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

var errBoom = errors.New("boom")
