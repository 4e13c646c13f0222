package naming

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
)

// Modes accepted for name_on_s3. Matching is case-insensitive; any other
// value is used verbatim as the object name.
const (
	ModeRandom   = "_random_"
	ModeFilename = "_filename_"
)

// DefaultRandomLength is the number of letters in a random object name.
const DefaultRandomLength = 12

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomString returns n random uppercase ASCII letters.
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}

// RandomKey returns prefix + n random letters + postfix.
func RandomKey(prefix, postfix string, n int) string {
	return prefix + RandomString(n) + postfix
}

// IsFilenameMode reports whether mode selects the local file's base name.
func IsFilenameMode(mode string) bool {
	switch strings.ToLower(mode) {
	case "_script_", "_scriptname_", "_file_", ModeFilename:
		return true
	}
	return false
}

// ObjectKey resolves the key for localPath under prefix according to mode.
// random supplies the letters for ModeRandom.
func ObjectKey(prefix, mode, localPath string, random func(int) string) string {
	switch {
	case strings.EqualFold(mode, ModeRandom):
		return prefix + random(DefaultRandomLength)
	case IsFilenameMode(mode):
		return prefix + filepath.Base(localPath)
	default:
		return prefix + mode
	}
}

// S3URI returns the s3:// URI of bucket/key.
func S3URI(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}
