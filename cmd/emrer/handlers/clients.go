// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsemr "github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"github.com/go-logr/logr"

	"github.com/imamik/emrer/internal/config"
	"github.com/imamik/emrer/internal/jobflow"
	"github.com/imamik/emrer/internal/platform/awsconf"
	"github.com/imamik/emrer/internal/platform/emr"
	"github.com/imamik/emrer/internal/platform/s3"
	"github.com/imamik/emrer/internal/util/async"
	"github.com/imamik/emrer/internal/util/retry"
)

// Stager uploads local scripts and removes them again on rollback.
type Stager interface {
	jobflow.Uploader
	BucketExists(ctx context.Context, bucket string) (bool, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	NotifyRetries(fn retry.Notify)
}

// ClusterClient is the part of the EMR client used by the handlers.
type ClusterClient interface {
	RunJobFlow(ctx context.Context, in *awsemr.RunJobFlowInput) (string, error)
	AddJobFlowSteps(ctx context.Context, clusterID string, steps []types.StepConfig) ([]string, error)
	ListClusterIDs(ctx context.Context, f emr.Filter) ([]string, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadJobFile loads and validates a job file.
	loadJobFile = config.LoadFile

	// findConfigFile locates emrer.yaml when no path is given.
	findConfigFile = config.FindConfigFile

	// loadAWSConfig resolves region and credentials.
	loadAWSConfig = awsconf.Load

	// newStager creates the S3 staging client.
	newStager = func(cfg aws.Config) Stager {
		return s3.NewClient(cfg)
	}

	// newClusterClient creates the EMR client.
	newClusterClient = func(cfg aws.Config) ClusterClient {
		return emr.NewClient(cfg)
	}
)

// loadJob resolves the job file path and loads it.
func loadJob(configPath string) (*config.Job, error) {
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	job, err := loadJobFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	return job, nil
}

// newWarningLogger returns the logger that prints translation warnings as
// "Warning: <msg> key=value...".
func newWarningLogger() logr.Logger {
	return logr.New(&warningSink{})
}

// warningSink renders the message first and the key/value pairs after it.
type warningSink struct {
	name   string
	values []any
}

func (s *warningSink) Init(logr.RuntimeInfo) {}

func (s *warningSink) Enabled(int) bool { return true }

func (s *warningSink) Info(_ int, msg string, keysAndValues ...any) {
	log.Print("Warning: " + s.render(msg, keysAndValues))
}

func (s *warningSink) Error(err error, msg string, keysAndValues ...any) {
	log.Print("Warning: " + s.render(msg, append(keysAndValues, "error", err)))
}

func (s *warningSink) WithValues(keysAndValues ...any) logr.LogSink {
	return &warningSink{name: s.name, values: append(slices.Clip(s.values), keysAndValues...)}
}

func (s *warningSink) WithName(name string) logr.LogSink {
	if s.name != "" {
		name = s.name + "/" + name
	}
	return &warningSink{name: name, values: s.values}
}

func (s *warningSink) render(msg string, keysAndValues []any) string {
	var b strings.Builder
	if s.name != "" {
		b.WriteString(s.name + ": ")
	}
	b.WriteString(msg)

	kvs := append(slices.Clip(s.values), keysAndValues...)
	for i := 0; i < len(kvs); i += 2 {
		var v any = "<missing>"
		if i+1 < len(kvs) {
			v = kvs[i+1]
		}
		fmt.Fprintf(&b, " %v=%s", kvs[i], formatValue(v))
	}
	return b.String()
}

// formatValue quotes values that would otherwise be ambiguous on one line.
func formatValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// logUploadRetry reports a failed upload attempt that will be retried.
func logUploadRetry(attempt int, err error, delay time.Duration) {
	log.Printf("Upload attempt %d failed, retrying in %s: %v", attempt, delay, err)
}

// checkStagingBucket fails early when the job's default staging bucket
// is missing, before anything is uploaded.
func checkStagingBucket(ctx context.Context, stager Stager, bucket string) error {
	if bucket == "" {
		return nil
	}
	exists, err := stager.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("staging bucket %q does not exist", bucket)
	}
	return nil
}

// rollback removes staged objects after a failed launch. Failures are
// logged so that the original error is the one returned.
func rollback(ctx context.Context, stager Stager, staged []jobflow.StagedObject) {
	if len(staged) == 0 {
		return
	}
	log.Printf("Removing %d staged object(s)...", len(staged))

	tasks := make([]async.Task, 0, len(staged))
	for _, obj := range staged {
		tasks = append(tasks, async.Task{
			Name: obj.URI(),
			Func: func(ctx context.Context) error {
				return stager.DeleteObject(ctx, obj.Bucket, obj.Key)
			},
		})
	}
	if err := async.RunParallel(context.WithoutCancel(ctx), tasks); err != nil {
		log.Printf("Warning: failed to remove staged objects: %v", err)
	}
}
