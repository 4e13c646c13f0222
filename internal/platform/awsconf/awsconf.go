// Package awsconf builds the shared AWS SDK configuration used by the S3 and
// EMR clients.
package awsconf

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options selects the region, profile and credentials. Empty fields fall
// back to the SDK default chain.
type Options struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// EndpointURL overrides the service endpoint, e.g. for LocalStack.
	EndpointURL string
}

// FromEnv fills static credentials from the standard AWS variables.
func (o Options) FromEnv() Options {
	if o.AccessKeyID == "" {
		o.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if o.SecretAccessKey == "" {
		o.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	if o.SessionToken == "" {
		o.SessionToken = os.Getenv("AWS_SESSION_TOKEN")
	}
	return o
}

// Load resolves an aws.Config for the given options.
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	var loaders []func(*config.LoadOptions) error

	if opts.Region != "" {
		loaders = append(loaders, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loaders = append(loaders, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, opts.SessionToken),
		))
	}
	if opts.EndpointURL != "" {
		loaders = append(loaders, config.WithBaseEndpoint(opts.EndpointURL))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		return aws.Config{}, fmt.Errorf("no AWS region configured: pass --region or set AWS_REGION")
	}

	return cfg, nil
}
