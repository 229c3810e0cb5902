// Package errors provides the typed error taxonomy shared by the scan
// pipeline and its callers.
package errors

import "fmt"

// Type identifies the category of error
type Type string

const (
	// TypeUnsupportedResource indicates an unrecognized resource type was requested
	TypeUnsupportedResource Type = "UNSUPPORTED_RESOURCE_TYPE"

	// TypeInvalidWindow indicates a non-positive lookback window
	TypeInvalidWindow Type = "INVALID_WINDOW"

	// TypeInventoryUnavailable indicates the provider inventory call failed.
	// Fatal to the whole scan: a partial inventory would silently
	// understate waste.
	TypeInventoryUnavailable Type = "INVENTORY_UNAVAILABLE"

	// TypeTelemetryUnavailable indicates a single resource's metric fetch
	// failed. Recovered per resource by the classifier, never surfaced
	// as a scan-level failure.
	TypeTelemetryUnavailable Type = "TELEMETRY_UNAVAILABLE"

	// TypeCostUnavailable indicates a billing/cost query failed
	TypeCostUnavailable Type = "COST_UNAVAILABLE"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"
)

// Error is a domain error carrying its category and underlying cause
type Error struct {
	Type    Type
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...any) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with a category and context message
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error belongs to a category, unwrapping as needed
func IsType(err error, t Type) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Type == t
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
