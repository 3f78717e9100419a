package validation

import (
	"fmt"

	"atelier/pkg/platform/sentinel"
)

// String element length limits
const (
	// MaxPageLength is the maximum length of a page path in an activity entry.
	MaxPageLength = 512

	// MaxActionLength is the maximum length of an interaction action name.
	MaxActionLength = 128

	// MaxLocationErrorLength is the maximum length of a device geolocation error description.
	MaxLocationErrorLength = 256
)

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%s exceeds max length of %d: %w", fieldName, max, sentinel.ErrInvalidInput)
	}
	return nil
}

// CheckRequired validates that a string is non-empty.
func CheckRequired(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required: %w", fieldName, sentinel.ErrInvalidInput)
	}
	return nil
}

// CheckNonNegative validates that an optional number is not below zero.
func CheckNonNegative(fieldName string, value *int64) error {
	if value != nil && *value < 0 {
		return fmt.Errorf("%s must not be negative: %w", fieldName, sentinel.ErrInvalidInput)
	}
	return nil
}
