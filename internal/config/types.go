package config

import (
	"fmt"
)

// Job is the top-level job file.
type Job struct {
	// Name is the cluster name shown in the EMR console.
	Name string `mapstructure:"name" yaml:"name"`

	// ReleaseLabel pins the EMR release (e.g. emr-4.3.0).
	ReleaseLabel string `mapstructure:"release_label" yaml:"release_label,omitempty"`

	// LogURI is where EMR writes cluster logs.
	LogURI string `mapstructure:"log_uri" yaml:"log_uri,omitempty"`

	// S3Bucket and S3Prefix are where local scripts are staged unless a
	// directive overrides them.
	S3Bucket string `mapstructure:"s3bucket" yaml:"s3bucket,omitempty"`
	S3Prefix string `mapstructure:"s3prefix" yaml:"s3prefix,omitempty"`

	Applications []string  `mapstructure:"applications" yaml:"applications,omitempty"`
	Instances    Instances `mapstructure:"instances" yaml:"instances"`

	JobFlowRole       string `mapstructure:"job_flow_role" yaml:"job_flow_role,omitempty"`
	ServiceRole       string `mapstructure:"service_role" yaml:"service_role,omitempty"`
	VisibleToAllUsers *bool  `mapstructure:"visible_to_all_users" yaml:"visible_to_all_users,omitempty"`

	Tags KeyValues `mapstructure:"tags" yaml:"tags,omitempty"`

	BootstrapActions []BootstrapAction `mapstructure:"bootstrap_actions" yaml:"bootstrap_actions,omitempty"`
	Steps            []Step            `mapstructure:"steps" yaml:"steps,omitempty"`
	Configurations   []Configuration   `mapstructure:"configurations" yaml:"configurations,omitempty"`
}

// Instances describes the EC2 side of the cluster.
type Instances struct {
	MasterType           string `mapstructure:"master_type" yaml:"master_type,omitempty"`
	CoreType             string `mapstructure:"core_type" yaml:"core_type,omitempty"`
	Count                int    `mapstructure:"count" yaml:"count,omitempty"`
	EC2KeyName           string `mapstructure:"ec2_key_name" yaml:"ec2_key_name,omitempty"`
	SubnetID             string `mapstructure:"subnet_id" yaml:"subnet_id,omitempty"`
	KeepAlive            bool   `mapstructure:"keep_alive" yaml:"keep_alive,omitempty"`
	TerminationProtected bool   `mapstructure:"termination_protected" yaml:"termination_protected,omitempty"`
}

// BootstrapAction is a bootstrap action as written in the job file.
//
// Exactly one of Script, Dir, S3 and Command must be present. A present but
// empty directive is ignored with a warning.
type BootstrapAction struct {
	Name string `mapstructure:"name" yaml:"name,omitempty"`

	Script  *string `mapstructure:"script" yaml:"script,omitempty"`
	Dir     *string `mapstructure:"dir" yaml:"dir,omitempty"`
	S3      *string `mapstructure:"s3" yaml:"s3,omitempty"`
	Command *string `mapstructure:"command" yaml:"command,omitempty"`

	Args Args `mapstructure:"args" yaml:"args,omitempty"`

	S3Bucket *string `mapstructure:"s3bucket" yaml:"s3bucket,omitempty"`
	S3Prefix *string `mapstructure:"s3prefix" yaml:"s3prefix,omitempty"`
	NameOnS3 string  `mapstructure:"name_on_s3" yaml:"name_on_s3,omitempty"`

	// Cleanup appends an action that removes the staged script again.
	Cleanup bool `mapstructure:"cleanup" yaml:"cleanup,omitempty"`
}

// Directives returns the keys of the directives that are present.
func (b BootstrapAction) Directives() []string {
	return presentKeys(
		directive{"script", b.Script},
		directive{"dir", b.Dir},
		directive{"s3", b.S3},
		directive{"command", b.Command},
	)
}

// Step is a job step as written in the job file.
type Step struct {
	Name      string `mapstructure:"name" yaml:"name"`
	Type      string `mapstructure:"type" yaml:"type,omitempty"`
	OnFailure string `mapstructure:"on_failure" yaml:"on_failure,omitempty"`

	Exec    *string `mapstructure:"exec" yaml:"exec,omitempty"`
	Script  *string `mapstructure:"script" yaml:"script,omitempty"`
	Dir     *string `mapstructure:"dir" yaml:"dir,omitempty"`
	S3      *string `mapstructure:"s3" yaml:"s3,omitempty"`
	Command *string `mapstructure:"command" yaml:"command,omitempty"`

	Args       Args      `mapstructure:"args" yaml:"args,omitempty"`
	MainClass  string    `mapstructure:"main_class" yaml:"main_class,omitempty"`
	Properties KeyValues `mapstructure:"properties" yaml:"properties,omitempty"`

	S3Bucket *string `mapstructure:"s3bucket" yaml:"s3bucket,omitempty"`
	S3Prefix *string `mapstructure:"s3prefix" yaml:"s3prefix,omitempty"`
	NameOnS3 string  `mapstructure:"name_on_s3" yaml:"name_on_s3,omitempty"`
}

// Directives returns the keys of the directives that are present.
func (s Step) Directives() []string {
	return presentKeys(
		directive{"exec", s.Exec},
		directive{"script", s.Script},
		directive{"dir", s.Dir},
		directive{"s3", s.S3},
		directive{"command", s.Command},
	)
}

// Configuration is a configuration object: a JSON/YAML file, a directory of
// such files, or an inline classification.
type Configuration struct {
	File *string        `mapstructure:"file" yaml:"file,omitempty"`
	Dir  *string        `mapstructure:"dir" yaml:"dir,omitempty"`
	Raw  map[string]any `mapstructure:",remain" yaml:",inline"`
}

// Sources returns which of file, dir and inline are set.
func (c Configuration) Sources() []string {
	keys := presentKeys(directive{"file", c.File}, directive{"dir", c.Dir})
	if len(c.Raw) > 0 {
		keys = append(keys, "inline")
	}
	return keys
}

// KeyValue is a single key/value pair.
type KeyValue struct {
	Key   string `mapstructure:"key" yaml:"key"`
	Value string `mapstructure:"value" yaml:"value"`
}

// KeyValues is an ordered list of pairs, used for tags and step properties.
type KeyValues []KeyValue

// Map returns the pairs as a map. Later keys win.
func (kv KeyValues) Map() map[string]string {
	m := make(map[string]string, len(kv))
	for _, p := range kv {
		m[p.Key] = p.Value
	}
	return m
}

// Args holds directive arguments. Most entries are strings; hive steps also
// accept single-key maps such as {input: s3://...}.
type Args []any

// Strings renders every argument as a string. Map arguments are rejected.
func (a Args) Strings() ([]string, error) {
	out := make([]string, 0, len(a))
	for _, arg := range a {
		switch v := arg.(type) {
		case string:
			out = append(out, v)
		case map[string]any, []any:
			return nil, fmt.Errorf("argument %v is not a scalar", v)
		case nil:
			out = append(out, "")
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out, nil
}

type directive struct {
	key   string
	value *string
}

func presentKeys(ds ...directive) []string {
	var keys []string
	for _, d := range ds {
		if d.value != nil {
			keys = append(keys, d.key)
		}
	}
	return keys
}
