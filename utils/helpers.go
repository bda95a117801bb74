package utils

import (
	"encoding/json"

	"github.com/contextweave/contextweave/constants"
)

// ============================================================================
// STANDARDIZED ERROR HELPERS
// ============================================================================

// ErrorWrapper provides standardized error handling patterns
type ErrorWrapper struct {
	context string
}

// NewErrorWrapper creates a new error wrapper with context
func NewErrorWrapper(context string) *ErrorWrapper {
	return &ErrorWrapper{context: context}
}

// Wrapf wraps an error with context and formatting
func (e *ErrorWrapper) Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Errorf("%s: "+format+": %w", append(append([]any{e.context}, args...), err)...)
}

// Failf creates a new error with context and formatting
func (e *ErrorWrapper) Failf(format string, args ...any) error {
	return Errorf("%s: "+format, append([]any{e.context}, args...)...)
}

// ============================================================================
// STANDARDIZED JSON HELPERS
// ============================================================================

// JSONResult represents the result of a JSON operation
type JSONResult struct {
	Data []byte
	Err  error
}

// MarshalJSON marshals data to JSON with error handling
func MarshalJSON(v any) JSONResult {
	data, err := json.Marshal(v)
	return JSONResult{Data: data, Err: err}
}

// MarshalJSONIndent marshals data to pretty JSON with error handling
func MarshalJSONIndent(v any, indent string) JSONResult {
	if indent == "" {
		indent = constants.JSONIndent
	}
	data, err := json.MarshalIndent(v, "", indent)
	return JSONResult{Data: data, Err: err}
}

// UnmarshalJSON unmarshals JSON data with error handling
func UnmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MustMarshalJSON marshals to JSON and panics on error (for testing)
func MustMarshalJSON(v any) []byte {
	result := MarshalJSON(v)
	if result.Err != nil {
		panic(result.Err)
	}
	return result.Data
}

// ============================================================================
// STANDARDIZED VALIDATION HELPERS
// ============================================================================

// ValidateOneOf checks if value is one of the allowed values
func ValidateOneOf(fieldName string, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Errorf("field '%s' must be one of %v, got '%s'", fieldName, allowed, value)
}

// ============================================================================
// STANDARDIZED SAFE TYPE ASSERTION HELPERS
// ============================================================================

// SafeStringAssert safely asserts a value to string
func SafeStringAssert(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// SafeMapAssert safely asserts a value to map[string]any
func SafeMapAssert(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// SafeSliceAssert safely asserts a value to []any
func SafeSliceAssert(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}
