// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max attempts,
// initial delay and maximum delay. Staging uploads go through it so that
// throttling and dropped connections do not abort a job launch, while
// errors marked with [Fatal] or rejected by [WithRetryIf] fail at once.
package retry
