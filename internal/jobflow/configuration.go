package jobflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"sigs.k8s.io/yaml"

	"github.com/imamik/emrer/internal/config"
)

// classification mirrors the EMR Configuration object. JSON field matching
// is case-insensitive, so both "Classification" and "classification" work.
type classification struct {
	Classification string           `json:"Classification"`
	Properties     map[string]any   `json:"Properties"`
	Configurations []classification `json:"Configurations"`
}

var configurationSources = []string{"file", "dir", "inline"}

// Configurations expands configuration entries: files and directories are
// read and spread into the list, inline objects are taken as they are.
func Configurations(entries []config.Configuration) ([]types.Configuration, error) {
	var out []types.Configuration
	for i, entry := range entries {
		converted, err := configuration(entry)
		if err != nil {
			return nil, fmt.Errorf("configurations[%d]: %w", i, err)
		}
		out = append(out, converted...)
	}
	return out, nil
}

func configuration(entry config.Configuration) ([]types.Configuration, error) {
	if err := exactlyOne(entry.Sources(), configurationSources); err != nil {
		return nil, err
	}

	switch {
	case entry.File != nil:
		return configurationFile(*entry.File)

	case entry.Dir != nil:
		files, err := listFiles(*entry.Dir)
		if err != nil {
			return nil, err
		}
		var out []types.Configuration
		for _, file := range files {
			converted, err := configurationFile(file)
			if err != nil {
				return nil, err
			}
			out = append(out, converted...)
		}
		return out, nil

	default:
		data, err := json.Marshal(entry.Raw)
		if err != nil {
			return nil, fmt.Errorf("failed to encode inline configuration: %w", err)
		}
		return parseConfigurations(data)
	}
}

// configurationFile reads a JSON or YAML file holding one configuration
// object or a list of them.
func configurationFile(path string) ([]types.Configuration, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}

	out, err := parseConfigurations(jsonData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func parseConfigurations(data []byte) ([]types.Configuration, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyConfiguration
	}

	var parsed []classification
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := strictDecode(trimmed, &parsed); err != nil {
			return nil, err
		}
	} else {
		var single classification
		if err := strictDecode(trimmed, &single); err != nil {
			return nil, err
		}
		parsed = []classification{single}
	}

	out := make([]types.Configuration, 0, len(parsed))
	for i, c := range parsed {
		if c.empty() {
			if len(parsed) == 1 {
				return nil, ErrEmptyConfiguration
			}
			return nil, fmt.Errorf("item %d: %w", i, ErrEmptyConfiguration)
		}
		converted, err := c.toSDK()
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func strictDecode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c classification) empty() bool {
	return c.Classification == "" && len(c.Properties) == 0 && len(c.Configurations) == 0
}

func (c classification) toSDK() (types.Configuration, error) {
	out := types.Configuration{}
	if c.Classification != "" {
		out.Classification = aws.String(c.Classification)
	}

	if len(c.Properties) > 0 {
		out.Properties = make(map[string]string, len(c.Properties))
		for k, v := range c.Properties {
			s, err := propertyString(v)
			if err != nil {
				return types.Configuration{}, fmt.Errorf("classification %q property %q: %w", c.Classification, k, err)
			}
			out.Properties[k] = s
		}
	}

	for _, nested := range c.Configurations {
		converted, err := nested.toSDK()
		if err != nil {
			return types.Configuration{}, err
		}
		out.Configurations = append(out.Configurations, converted)
	}
	return out, nil
}

// propertyString renders a scalar property value the way EMR expects it.
func propertyString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case json.Number:
		return val.String(), nil
	default:
		return "", fmt.Errorf("value must be a scalar, got %T", v)
	}
}
