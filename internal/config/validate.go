package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validate checks the job for errors that do not depend on the filesystem or
// on AWS. Directive expansion performs the remaining checks.
func (j *Job) Validate() error {
	var errs []error

	if j.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if j.Instances.Count < 1 {
		errs = append(errs, fmt.Errorf("instances.count must be at least 1, got %d", j.Instances.Count))
	}
	if j.Instances.Count > math.MaxInt32 {
		errs = append(errs, fmt.Errorf("instances.count must be at most %d, got %d", math.MaxInt32, j.Instances.Count))
	}
	if j.LogURI != "" && !strings.HasPrefix(j.LogURI, "s3://") {
		errs = append(errs, fmt.Errorf("log_uri %q must start with s3://", j.LogURI))
	}

	for i, step := range j.Steps {
		if step.Name == "" {
			errs = append(errs, fmt.Errorf("steps[%d]: name is required", i))
		}
	}

	for i, cfg := range j.Configurations {
		if sources := cfg.Sources(); len(sources) > 1 {
			errs = append(errs, fmt.Errorf("configurations[%d]: only one of file|dir|inline may be set, got %s",
				i, strings.Join(sources, ", ")))
		}
	}

	return errors.Join(errs...)
}
