// Package s3 stages local files in Amazon S3 before a cluster is launched.
//
// It uploads scripts under generated or derived keys, checks that the
// staging bucket is reachable, and removes staged objects when the cluster
// request that referenced them fails.
package s3
