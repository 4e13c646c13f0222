// Package config defines the job file model read by emrer.
//
// A [Job] is the user-facing, shorthand description of an EMR cluster:
// bootstrap actions, steps and configuration objects written as directives
// (a local script, a directory of scripts, an S3 pointer, a command on the
// host). The jobflow package expands a Job into the request structures the
// EMR API expects; this package only loads, defaults and validates it.
package config
