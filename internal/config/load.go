package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile reads, defaults and validates a job from a YAML file.
func LoadFile(path string) (*Job, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	job, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Load parses, defaults and validates a job from YAML bytes.
func Load(data []byte) (*Job, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("job file is empty")
	}

	job, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(job)

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return job, nil
}

func applyDefaults(job *Job) {
	if job.ReleaseLabel == "" {
		job.ReleaseLabel = DefaultReleaseLabel()
	}
	if job.JobFlowRole == "" {
		job.JobFlowRole = DefaultJobFlowRole
	}
	if job.ServiceRole == "" {
		job.ServiceRole = DefaultServiceRole
	}
	if job.VisibleToAllUsers == nil {
		visible := true
		job.VisibleToAllUsers = &visible
	}
	if job.Instances.MasterType == "" {
		job.Instances.MasterType = DefaultInstanceType
	}
	if job.Instances.CoreType == "" {
		job.Instances.CoreType = job.Instances.MasterType
	}
	if job.Instances.Count == 0 {
		job.Instances.Count = DefaultInstanceCount
	}
}

// FindConfigFile searches for emrer.yaml in the current directory and then
// in each parent directory.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		path := filepath.Join(dir, DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("config file %s not found", DefaultConfigFilename)
}

// WriteFile writes a job to a YAML file.
func WriteFile(job *Job, path string) error {
	data, err := yaml.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
