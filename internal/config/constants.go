package config

// DefaultConfigFilename is the default job filename.
const DefaultConfigFilename = "emrer.yaml"

// Defaults applied to a loaded job when the corresponding field is empty.
const (
	DefaultJobFlowRole   = "EMR_EC2_DefaultRole"
	DefaultServiceRole   = "EMR_DefaultRole"
	DefaultInstanceType  = "m3.xlarge"
	DefaultInstanceCount = 1
)

// DefaultReleaseLabel returns the EMR release used when the job does not pin one.
func DefaultReleaseLabel() string {
	return "emr-4.3.0"
}
