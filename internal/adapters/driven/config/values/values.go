// Package values converts loosely typed configuration values.
// TOML decodes integers as int64 and arrays as []any, environment
// variables arrive as strings; every config store answers typed lookups
// through the same rules.
package values

import "strconv"

// Map holds flattened configuration values keyed by dot notation.
type Map map[string]any

// Get retrieves a value by key.
func (m Map) Get(key string) (any, bool) {
	val, ok := m[key]
	return val, ok
}

// String returns the value as a string, or "" if it isn't one.
func (m Map) String(key string) string {
	str, _ := m[key].(string)
	return str
}

// Int returns the value as an int, or 0 if it isn't numeric.
func (m Map) Int(key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float returns the value as a float64, or 0 if it isn't numeric.
func (m Map) Float(key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool returns the value as a bool, or false if it isn't one.
func (m Map) Bool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// StringSlice returns the value as a string slice, or nil if it isn't one.
// Non-string array members are dropped.
func (m Map) StringSlice(key string) []string {
	switch v := m[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// Flatten converts nested maps to dot-notation keys.
// E.g., {"dedup": {"workers": 4}} becomes {"dedup.workers": 4}.
func Flatten(m map[string]any, prefix string) Map {
	result := make(Map)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range Flatten(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}
