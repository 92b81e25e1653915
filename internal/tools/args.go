package tools

import (
	"fmt"
	"slices"
)

// RequiredString returns the named argument as a non-empty string, or an
// error describing the missing parameter.
func RequiredString(args map[string]interface{}, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("missing or invalid required parameter: %s", key)
	}
	return value, nil
}

// OptionalString returns the named argument as a string, or def when the
// argument is absent or empty.
func OptionalString(args map[string]interface{}, key, def string) string {
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return def
}

// OptionalInt returns the named argument as an int, or def when the
// argument is absent. JSON numbers arrive as float64. The second return
// reports whether the argument was actually supplied.
func OptionalInt(args map[string]interface{}, key string, def int) (int, bool) {
	if value, ok := args[key].(float64); ok {
		return int(value), true
	}
	return def, false
}

// ClampInt bounds v to the inclusive [min, max] range.
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// EnumString returns the named argument when it is one of the allowed
// values, def when absent, and an error for anything else.
func EnumString(args map[string]interface{}, key string, allowed []string, def string) (string, error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return def, nil
	}
	if !slices.Contains(allowed, value) {
		return "", fmt.Errorf("invalid value for parameter %s: %q (must be one of %v)", key, value, allowed)
	}
	return value, nil
}

// RequiredEnum returns the named argument when it is one of the allowed
// values, and an error when absent or invalid.
func RequiredEnum(args map[string]interface{}, key string, allowed []string) (string, error) {
	value, err := RequiredString(args, key)
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, value) {
		return "", fmt.Errorf("invalid value for parameter %s: %q (must be one of %v)", key, value, allowed)
	}
	return value, nil
}
