package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWizardResult_ToJob(t *testing.T) {
	r := &WizardResult{
		Name:         "analytics",
		ReleaseLabel: "emr-5.36.0",
		S3Bucket:     "bucket",
		S3Prefix:     "emrer/",
		InstanceType: "m5.xlarge",
		Count:        3,
		Applications: []string{"Hadoop", "Spark"},
	}

	job := r.ToJob()

	assert.Equal(t, "analytics", job.Name)
	assert.Equal(t, "emr-5.36.0", job.ReleaseLabel)
	assert.Equal(t, "m5.xlarge", job.Instances.MasterType)
	assert.Equal(t, "m5.xlarge", job.Instances.CoreType)
	assert.Equal(t, 3, job.Instances.Count)
	assert.Equal(t, DefaultJobFlowRole, job.JobFlowRole)
	assert.Equal(t, []string{"Hadoop", "Spark"}, job.Applications)
	assert.NoError(t, job.Validate())
}

func TestWizardValidators(t *testing.T) {
	assert.Error(t, validateJobName("  "))
	assert.NoError(t, validateJobName("my-cluster"))

	assert.NoError(t, validateBucketName("my-bucket.logs"))
	assert.Error(t, validateBucketName("My_Bucket"))
	assert.Error(t, validateBucketName("ab"))

	assert.NoError(t, validateLogURI(""))
	assert.NoError(t, validateLogURI("s3://b/logs/"))
	assert.Error(t, validateLogURI("b/logs"))
}
