package emr

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"github.com/aws/smithy-go"
)

// API is the subset of *emr.Client used here.
type API interface {
	emr.ListClustersAPIClient
	RunJobFlow(ctx context.Context, params *emr.RunJobFlowInput, optFns ...func(*emr.Options)) (*emr.RunJobFlowOutput, error)
	AddJobFlowSteps(ctx context.Context, params *emr.AddJobFlowStepsInput, optFns ...func(*emr.Options)) (*emr.AddJobFlowStepsOutput, error)
	DescribeCluster(ctx context.Context, params *emr.DescribeClusterInput, optFns ...func(*emr.Options)) (*emr.DescribeClusterOutput, error)
}

// Client submits and inspects EMR clusters.
type Client struct {
	api API
}

// NewClient creates a client from a resolved AWS config.
func NewClient(cfg aws.Config, optFns ...func(*emr.Options)) *Client {
	return &Client{api: emr.NewFromConfig(cfg, optFns...)}
}

// NewClientWithAPI creates a client around an existing API implementation.
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// RunJobFlow launches a cluster and returns its ID.
func (c *Client) RunJobFlow(ctx context.Context, in *emr.RunJobFlowInput) (string, error) {
	out, err := c.api.RunJobFlow(ctx, in)
	if err != nil {
		return "", fmt.Errorf("failed to run job flow %s: %w", aws.ToString(in.Name), describeAPIError(err))
	}
	return aws.ToString(out.JobFlowId), nil
}

// AddJobFlowSteps appends steps to a running cluster and returns the new
// step IDs in submission order.
func (c *Client) AddJobFlowSteps(ctx context.Context, clusterID string, steps []types.StepConfig) ([]string, error) {
	if len(steps) == 0 {
		return nil, nil
	}
	out, err := c.api.AddJobFlowSteps(ctx, &emr.AddJobFlowStepsInput{
		JobFlowId: aws.String(clusterID),
		Steps:     steps,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add steps to cluster %s: %w", clusterID, describeAPIError(err))
	}
	return out.StepIds, nil
}

// describeAPIError prefixes the API error code when the error carries one.
func describeAPIError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", apiErr.ErrorCode(), err)
	}
	return err
}
