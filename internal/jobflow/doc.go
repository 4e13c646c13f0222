// Package jobflow expands a job file into EMR API request structures.
//
// Directives are shorthand: "script" names a local file that has to be
// staged in S3 first, "dir" stands for every script in a directory, "s3" and
// "command" point at files that already exist remotely or on the node. The
// [Translator] resolves each directive into fully specified bootstrap
// actions and steps, in order, uploading local content through an
// [Uploader] on the way. Configuration objects are read from JSON or YAML
// files, directories, or taken inline.
package jobflow
