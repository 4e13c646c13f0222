// Package emr wraps the parts of the Amazon EMR API that emrer calls:
// launching a job flow, adding steps to a running cluster, and listing
// clusters filtered by state, creation time and tags.
package emr
