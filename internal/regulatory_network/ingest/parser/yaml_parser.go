package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsYAMLSource reports whether a source locator names a YAML document.
func IsYAMLSource(locator string) bool {
	l := strings.ToLower(locator)
	if i := strings.IndexAny(l, "?#"); i >= 0 {
		l = l[:i]
	}
	return strings.HasSuffix(l, ".yaml") || strings.HasSuffix(l, ".yml")
}

// YAMLToJSON re-encodes a YAML document as JSON so it can go through the same schema
// contract as JSON sources.
func YAMLToJSON(b []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("yaml to json: %w", err)
	}
	return out, nil
}

// Normalize converts raw bytes to JSON, decoding YAML first when the locator asks for it.
func Normalize(locator string, b []byte) ([]byte, error) {
	if IsYAMLSource(locator) {
		return YAMLToJSON(b)
	}
	return b, nil
}

// yaml.v3 decodes mappings with non-string keys into map[any]any in nested positions.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
