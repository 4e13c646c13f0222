package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/imamik/emrer/internal/util/naming"
	"github.com/imamik/emrer/internal/util/retry"
)

// Client wraps the S3 client used for staging.
type Client struct {
	s3        *s3.Client
	retryOpts []retry.Option
}

// NewClient creates a staging client from a resolved AWS config.
func NewClient(cfg aws.Config, optFns ...func(*s3.Options)) *Client {
	return &Client{
		s3: s3.NewFromConfig(cfg, optFns...),
		retryOpts: []retry.Option{
			retry.WithMaxRetries(3),
			retry.WithInitialDelay(500 * time.Millisecond),
			retry.WithMaxDelay(5 * time.Second),
			retry.WithRetryIf(isRetryable),
		},
	}
}

// NotifyRetries registers fn to be told about retried upload attempts.
func (c *Client) NotifyRetries(fn retry.Notify) {
	c.retryOpts = append(c.retryOpts, retry.WithOnRetry(fn))
}

// Upload streams the local file at localPath to bucket/key.
// A missing or unreadable local file is not retried.
func (c *Client) Upload(ctx context.Context, localPath, bucket, key string) error {
	err := retry.WithExponentialBackoff(ctx, func() error {
		// #nosec G304
		f, err := os.Open(localPath)
		if err != nil {
			return retry.Fatal(err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return retry.Fatal(err)
		}
		if info.IsDir() {
			return retry.Fatal(fmt.Errorf("%s is a directory", localPath))
		}

		_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(bucket),
			Key:           aws.String(key),
			Body:          f,
			ContentLength: aws.Int64(info.Size()),
		})
		return err
	}, c.retryOpts...)
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", localPath, bucket, key, err)
	}
	return nil
}

// UploadRandom uploads localPath under prefix + randLength random letters +
// postfix and returns "bucket/key". With randLength 0 the key is just
// prefix + postfix.
func (c *Client) UploadRandom(ctx context.Context, localPath, bucket, prefix, postfix string, randLength int) (string, error) {
	key := naming.RandomKey(prefix, postfix, randLength)
	if err := c.Upload(ctx, localPath, bucket, key); err != nil {
		return "", err
	}
	return bucket + "/" + key, nil
}

// BucketExists checks if a bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	return true, nil
}

// DeleteObject deletes an object from a bucket.
func (c *Client) DeleteObject(ctx context.Context, bucketName, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", key, bucketName, err)
	}
	return nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// S3-compatible endpoints do not always return the typed errors.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}

	return false
}

// isRetryable rejects errors that another attempt cannot fix.
func isRetryable(err error) bool {
	return !isAccessDenied(err) && !isNotFoundError(err)
}

func isAccessDenied(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "AccessDenied" || code == "Forbidden" || code == "403"
	}
	return false
}
