package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys lists the settable config keys, taken from the Config yaml tags.
var Keys = yamlKeys(reflect.TypeOf(Config{}))

// listKeys hold lists. SetValue splits their raw value on commas.
var listKeys = map[string]bool{"severities": true}

// ValidateKeyPath reports whether key names a Config field. Config is flat,
// so dotted keys are rejected.
func ValidateKeyPath(key string) error {
	if key == "" {
		return fmt.Errorf("empty key path")
	}
	name, sub, nested := strings.Cut(key, ".")
	if !slices.Contains(Keys, name) {
		return fmt.Errorf("unknown key %q; valid keys: %s", name, strings.Join(Keys, ", "))
	}
	if nested {
		return fmt.Errorf("key %q is a scalar; cannot use sub-key %q", name, sub)
	}
	return nil
}

// GetValue returns the value of key in cfg. Lists come back as []any.
// Unset keys are reported as not found.
func GetValue(cfg *Config, key string) (any, error) {
	m, err := ToFlatMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("key %q not found", key)
	}
	return v, nil
}

// SetValue stores rawValue under key in a raw config document. Values are
// kept as strings, or as a list of trimmed strings for list keys.
func SetValue(data map[string]any, key, rawValue string) error {
	if key == "" {
		return fmt.Errorf("empty key path")
	}
	if !listKeys[key] {
		data[key] = rawValue
		return nil
	}
	items := []any{}
	for _, s := range strings.Split(rawValue, ",") {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	data[key] = items
	return nil
}

// ToFlatMap returns the set fields of cfg keyed by their config key.
func ToFlatMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func yamlKeys(t reflect.Type) []string {
	var keys []string
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	slices.Sort(keys)
	return keys
}
