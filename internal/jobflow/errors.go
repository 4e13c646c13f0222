package jobflow

import "errors"

var (
	// ErrNoDirective is returned when an action or step sets none of its directives.
	ErrNoDirective = errors.New("no directive set")

	// ErrConflictingDirectives is returned when more than one directive is set.
	ErrConflictingDirectives = errors.New("conflicting directives")

	// ErrBucketUndefined is returned when a local script has nowhere to be staged.
	ErrBucketUndefined = errors.New("bucket undefined")

	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrEmptyConfiguration is returned for a configuration document or list
	// item that holds no classification.
	ErrEmptyConfiguration = errors.New("empty configuration")

	// ErrUnsupportedStepType is returned for step types that cannot be translated.
	ErrUnsupportedStepType = errors.New("unsupported step type")
)
