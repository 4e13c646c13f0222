package handlers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsemr "github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/emrer/internal/platform/awsconf"
)

func TestRun_Success(t *testing.T) {
	path := writeJob(t, testJob)
	stager := &fakeStager{}
	cluster := &mockClusterClient{}
	useFakeAWS(t, stager, cluster)

	cluster.On("RunJobFlow", mock.Anything, mock.MatchedBy(func(in *awsemr.RunJobFlowInput) bool {
		return aws.ToString(in.Name) == "nightly" &&
			len(in.BootstrapActions) == 1 &&
			aws.ToString(in.BootstrapActions[0].ScriptBootstrapAction.Path) == "s3://stage/jobs/bootstrap.sh" &&
			len(in.Steps) == 1 &&
			len(in.Tags) == 1
	})).Return("j-123", nil)

	var err error
	output := captureOutput(func() {
		err = Run(context.Background(), path, awsconf.Options{Region: "us-east-1"})
	})
	require.NoError(t, err)

	assert.Equal(t, "j-123\n", output)
	assert.Equal(t, []string{"stage/jobs/bootstrap.sh"}, stager.uploads)
	assert.Empty(t, stager.deleted)
	assert.NotNil(t, stager.notify, "upload retries should be reported")
	cluster.AssertExpectations(t)
}

func TestRun_FindsConfigFile(t *testing.T) {
	path := writeJob(t, testJob)
	stager := &fakeStager{}
	cluster := &mockClusterClient{}
	useFakeAWS(t, stager, cluster)

	findConfigFile = func() (string, error) { return path, nil }
	cluster.On("RunJobFlow", mock.Anything, mock.Anything).Return("j-456", nil)

	output := captureOutput(func() {
		require.NoError(t, Run(context.Background(), "", awsconf.Options{}))
	})
	assert.Contains(t, output, "j-456")
}

func TestRun_RollbackWhenLaunchFails(t *testing.T) {
	path := writeJob(t, testJob)
	stager := &fakeStager{deleteErr: errBoom}
	cluster := &mockClusterClient{}
	useFakeAWS(t, stager, cluster)

	cluster.On("RunJobFlow", mock.Anything, mock.Anything).Return("", errBoom)

	err := Run(context.Background(), path, awsconf.Options{})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"stage/jobs/bootstrap.sh"}, stager.deleted)
}

func TestRun_RollbackWhenTranslationFails(t *testing.T) {
	path := writeJob(t, `
name: nightly
s3bucket: stage
s3prefix: jobs/
bootstrap_actions:
  - script: bootstrap.sh
steps:
  - name: broken
    type: streaming
    exec: s3://code/streaming.jar
`)
	stager := &fakeStager{}
	cluster := &mockClusterClient{}
	useFakeAWS(t, stager, cluster)

	err := Run(context.Background(), path, awsconf.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build job flow")
	assert.Equal(t, []string{"stage/jobs/bootstrap.sh"}, stager.deleted)
	cluster.AssertNotCalled(t, "RunJobFlow", mock.Anything, mock.Anything)
}

func TestRun_UploadFailure(t *testing.T) {
	path := writeJob(t, testJob)
	stager := &fakeStager{uploadErr: errBoom}
	cluster := &mockClusterClient{}
	useFakeAWS(t, stager, cluster)

	err := Run(context.Background(), path, awsconf.Options{})
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, stager.deleted)
	cluster.AssertNotCalled(t, "RunJobFlow", mock.Anything, mock.Anything)
}

func TestRun_LoadErrors(t *testing.T) {
	t.Run("missing job file", func(t *testing.T) {
		saveAndRestoreFactories(t)
		err := Run(context.Background(), "/nonexistent/emrer.yaml", awsconf.Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load job")
	})

	t.Run("no job file found", func(t *testing.T) {
		saveAndRestoreFactories(t)
		findConfigFile = func() (string, error) { return "", errBoom }
		err := Run(context.Background(), "", awsconf.Options{})
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("aws config", func(t *testing.T) {
		path := writeJob(t, testJob)
		saveAndRestoreFactories(t)
		loadAWSConfig = func(context.Context, awsconf.Options) (aws.Config, error) {
			return aws.Config{}, errBoom
		}
		err := Run(context.Background(), path, awsconf.Options{})
		require.ErrorIs(t, err, errBoom)
	})
}

func TestRun_StagingBucket(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		path := writeJob(t, testJob)
		stager := &fakeStager{missing: true}
		cluster := &mockClusterClient{}
		useFakeAWS(t, stager, cluster)

		err := Run(context.Background(), path, awsconf.Options{})
		require.Error(t, err)
		assert.Equal(t, `staging bucket "stage" does not exist`, err.Error())
		assert.Empty(t, stager.uploads)
		cluster.AssertNotCalled(t, "RunJobFlow", mock.Anything, mock.Anything)
	})

	t.Run("check fails", func(t *testing.T) {
		path := writeJob(t, testJob)
		stager := &fakeStager{bucketErr: errBoom}
		useFakeAWS(t, stager, &mockClusterClient{})

		err := Run(context.Background(), path, awsconf.Options{})
		require.ErrorIs(t, err, errBoom)
		assert.Empty(t, stager.uploads)
	})
}
