package jobflow

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"

	"github.com/imamik/emrer/internal/config"
)

// Tags converts key/value pairs to EMR tags, keeping their order.
func Tags(kv config.KeyValues) []types.Tag {
	if len(kv) == 0 {
		return nil
	}
	tags := make([]types.Tag, 0, len(kv))
	for _, p := range kv {
		tags = append(tags, types.Tag{Key: aws.String(p.Key), Value: aws.String(p.Value)})
	}
	return tags
}

// RunJobFlowInput expands the whole job into a RunJobFlow request, staging
// local scripts on the way.
func (t *Translator) RunJobFlowInput(ctx context.Context, job *config.Job) (*emr.RunJobFlowInput, error) {
	loc := Location{Bucket: job.S3Bucket, Prefix: job.S3Prefix}

	bootstrap, err := t.BootstrapActions(ctx, job.BootstrapActions, loc)
	if err != nil {
		return nil, err
	}

	steps, err := t.Steps(ctx, job.Steps, loc)
	if err != nil {
		return nil, err
	}

	configurations, err := Configurations(job.Configurations)
	if err != nil {
		return nil, err
	}

	in := &emr.RunJobFlowInput{
		Name:              aws.String(job.Name),
		ReleaseLabel:      aws.String(job.ReleaseLabel),
		Applications:      applications(job.Applications),
		Instances:         instances(job.Instances),
		BootstrapActions:  bootstrap,
		Steps:             steps,
		Configurations:    configurations,
		Tags:              Tags(job.Tags),
		VisibleToAllUsers: job.VisibleToAllUsers,
	}
	if job.LogURI != "" {
		in.LogUri = aws.String(job.LogURI)
	}
	if job.JobFlowRole != "" {
		in.JobFlowRole = aws.String(job.JobFlowRole)
	}
	if job.ServiceRole != "" {
		in.ServiceRole = aws.String(job.ServiceRole)
	}

	return in, nil
}

func applications(names []string) []types.Application {
	if len(names) == 0 {
		return nil
	}
	apps := make([]types.Application, 0, len(names))
	for _, n := range names {
		apps = append(apps, types.Application{Name: aws.String(n)})
	}
	return apps
}

func instances(in config.Instances) *types.JobFlowInstancesConfig {
	out := &types.JobFlowInstancesConfig{
		InstanceCount:               aws.Int32(int32(in.Count)),
		KeepJobFlowAliveWhenNoSteps: aws.Bool(in.KeepAlive),
		TerminationProtected:        aws.Bool(in.TerminationProtected),
	}
	if in.MasterType != "" {
		out.MasterInstanceType = aws.String(in.MasterType)
	}
	if in.CoreType != "" {
		out.SlaveInstanceType = aws.String(in.CoreType)
	}
	if in.EC2KeyName != "" {
		out.Ec2KeyName = aws.String(in.EC2KeyName)
	}
	if in.SubnetID != "" {
		out.Ec2SubnetId = aws.String(in.SubnetID)
	}
	return out
}
