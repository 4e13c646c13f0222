package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/mitchellh/mapstructure"
)

var (
	argsType      = reflect.TypeOf(Args{})
	keyValuesType = reflect.TypeOf(KeyValues{})
)

// directiveKeys are the keys whose presence matters even when the value is
// null, e.g. "dir:" with nothing after it.
var directiveKeys = []string{"exec", "script", "dir", "s3", "command", "s3bucket", "s3prefix"}

// decode converts the raw YAML document into a Job.
func decode(raw map[string]any) (*Job, error) {
	keepNullDirectives(raw["bootstrap_actions"])
	keepNullDirectives(raw["steps"])

	var job Job
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			argsHook,
			keyValuesHook,
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &job,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &job, nil
}

// keepNullDirectives replaces null directive values with empty strings so the
// decoder records them as present.
func keepNullDirectives(list any) {
	items, ok := list.([]any)
	if !ok {
		return
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range directiveKeys {
			if v, exists := m[key]; exists && v == nil {
				m[key] = ""
			}
		}
	}
}

// argsHook accepts a shell-style string wherever Args is expected.
func argsHook(from, to reflect.Type, data any) (any, error) {
	if to != argsType || from.Kind() != reflect.String {
		return data, nil
	}
	words, err := shellquote.Split(data.(string))
	if err != nil {
		return nil, fmt.Errorf("failed to split args %q: %w", data, err)
	}
	out := make([]any, len(words))
	for i, w := range words {
		out[i] = w
	}
	return out, nil
}

// keyValuesHook accepts a map, a list of maps, or a list of {key, value}
// entries wherever KeyValues is expected. Map keys are sorted.
func keyValuesHook(from, to reflect.Type, data any) (any, error) {
	if to != keyValuesType {
		return data, nil
	}
	switch v := data.(type) {
	case map[string]any:
		return pairsFromMap(v), nil
	case []any:
		var out []map[string]any
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("expected a map, got %T", item)
			}
			out = append(out, pairsFromMap(m)...)
		}
		return out, nil
	}
	return data, nil
}

func pairsFromMap(m map[string]any) []map[string]any {
	if k, v, ok := explicitPair(m); ok {
		return []map[string]any{{"key": k, "value": v}}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, map[string]any{"key": k, "value": scalarString(m[k])})
	}
	return out
}

// explicitPair detects the {key: k, value: v} form, in any letter case.
func explicitPair(m map[string]any) (string, string, bool) {
	if len(m) != 2 {
		return "", "", false
	}
	var key, value string
	var hasKey, hasValue bool
	for k, v := range m {
		switch strings.ToLower(k) {
		case "key":
			key, hasKey = scalarString(v), true
		case "value":
			value, hasValue = scalarString(v), true
		}
	}
	return key, value, hasKey && hasValue
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
