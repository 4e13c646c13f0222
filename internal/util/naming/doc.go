// Package naming builds S3 object keys for staged scripts.
//
// Keys follow the pattern {prefix}{middle}{postfix}, where the middle part is
// either a run of random uppercase letters, the local file's base name, or a
// literal name chosen in the job file.
package naming
