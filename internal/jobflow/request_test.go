package jobflow

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/emrer/internal/config"
)

func TestRunJobFlowInput(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), "bootstrap.sh")
	confFile := writeConfig(t, dir, "conf.json", `{"Classification": "hive-site", "Properties": {"a": "b"}}`)

	job := &config.Job{
		Name:              "nightly",
		ReleaseLabel:      "emr-4.3.0",
		LogURI:            "s3://logs/nightly/",
		S3Bucket:          "stage",
		S3Prefix:          "jobs/",
		Applications:      []string{"Hadoop", "Hive"},
		JobFlowRole:       config.DefaultJobFlowRole,
		ServiceRole:       config.DefaultServiceRole,
		VisibleToAllUsers: aws.Bool(true),
		Instances: config.Instances{
			MasterType: "m3.xlarge",
			CoreType:   "m3.2xlarge",
			Count:      3,
			EC2KeyName: "ops",
			SubnetID:   "subnet-1",
			KeepAlive:  true,
		},
		Tags: config.KeyValues{{Key: "team", Value: "data"}, {Key: "env", Value: "prod"}},
		BootstrapActions: []config.BootstrapAction{
			{Name: "setup", Script: strPtr(filepath.Join(dir, "bootstrap.sh"))},
		},
		Steps: []config.Step{
			{Name: "query", Type: "hive", S3: strPtr("stage/q.hql")},
		},
		Configurations: []config.Configuration{{File: &confFile}},
	}

	tr, rec, _ := newTestTranslator(t)
	in, err := tr.RunJobFlowInput(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, "nightly", aws.ToString(in.Name))
	assert.Equal(t, "emr-4.3.0", aws.ToString(in.ReleaseLabel))
	assert.Equal(t, "s3://logs/nightly/", aws.ToString(in.LogUri))
	assert.Equal(t, "EMR_EC2_DefaultRole", aws.ToString(in.JobFlowRole))
	assert.Equal(t, "EMR_DefaultRole", aws.ToString(in.ServiceRole))
	assert.True(t, aws.ToBool(in.VisibleToAllUsers))

	assert.Equal(t, []types.Application{
		{Name: aws.String("Hadoop")},
		{Name: aws.String("Hive")},
	}, in.Applications)

	require.NotNil(t, in.Instances)
	assert.Equal(t, int32(3), aws.ToInt32(in.Instances.InstanceCount))
	assert.Equal(t, "m3.xlarge", aws.ToString(in.Instances.MasterInstanceType))
	assert.Equal(t, "m3.2xlarge", aws.ToString(in.Instances.SlaveInstanceType))
	assert.Equal(t, "ops", aws.ToString(in.Instances.Ec2KeyName))
	assert.Equal(t, "subnet-1", aws.ToString(in.Instances.Ec2SubnetId))
	assert.True(t, aws.ToBool(in.Instances.KeepJobFlowAliveWhenNoSteps))
	assert.False(t, aws.ToBool(in.Instances.TerminationProtected))

	require.Len(t, in.BootstrapActions, 1)
	assert.Equal(t, "s3://stage/jobs/bootstrap.sh", aws.ToString(in.BootstrapActions[0].ScriptBootstrapAction.Path))

	require.Len(t, in.Steps, 1)
	assert.Equal(t, CommandRunnerJar, aws.ToString(in.Steps[0].HadoopJarStep.Jar))

	require.Len(t, in.Configurations, 1)
	assert.Equal(t, "hive-site", aws.ToString(in.Configurations[0].Classification))

	assert.Equal(t, []types.Tag{
		{Key: aws.String("team"), Value: aws.String("data")},
		{Key: aws.String("env"), Value: aws.String("prod")},
	}, in.Tags)

	assert.Len(t, rec.Objects, 1)
}

func TestRunJobFlowInput_Minimal(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)
	in, err := tr.RunJobFlowInput(context.Background(), &config.Job{
		Name:         "bare",
		ReleaseLabel: "emr-4.3.0",
		Instances:    config.Instances{Count: 1},
	})
	require.NoError(t, err)

	assert.Nil(t, in.LogUri)
	assert.Nil(t, in.JobFlowRole)
	assert.Nil(t, in.ServiceRole)
	assert.Nil(t, in.Applications)
	assert.Nil(t, in.Tags)
	assert.Nil(t, in.Instances.MasterInstanceType)
	assert.Empty(t, in.BootstrapActions)
	assert.Empty(t, in.Steps)
	assert.Empty(t, rec.Objects)
}

func TestRunJobFlowInput_StopsAtFirstError(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), "bootstrap.sh")

	tr, _, _ := newTestTranslator(t)
	_, err := tr.RunJobFlowInput(context.Background(), &config.Job{
		Name:         "broken",
		ReleaseLabel: "emr-4.3.0",
		S3Bucket:     "stage",
		Instances:    config.Instances{Count: 1},
		BootstrapActions: []config.BootstrapAction{
			{Script: strPtr(filepath.Join(dir, "bootstrap.sh"))},
		},
		Steps: []config.Step{{Name: "bad", Type: "streaming", Exec: strPtr("x.jar")}},
	})
	require.ErrorIs(t, err, ErrUnsupportedStepType)
	assert.Len(t, tr.Staged(), 1)
}

func TestTags(t *testing.T) {
	assert.Nil(t, Tags(nil))
	assert.Len(t, Tags(config.KeyValues{{Key: "a", Value: ""}}), 1)
}

func TestRecorder_MissingFile(t *testing.T) {
	rec := &Recorder{}
	err := rec.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.sh"), "b", "k")
	require.Error(t, err)

	err = rec.Upload(context.Background(), t.TempDir(), "b", "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
	assert.Empty(t, rec.Objects)
}

func TestStagedObject_URI(t *testing.T) {
	assert.Equal(t, "s3://b/p/x.sh", StagedObject{Bucket: "b", Key: "p/x.sh"}.URI())
}
