package config

import (
	"reflect"
)

// GetBoolValue dereferences an optional bool field, falling back to the
// default when it was not explicitly set in the config file.
func GetBoolValue(field *bool, defaultValue bool) bool {
	if field == nil {
		return defaultValue
	}
	return *field
}

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}
