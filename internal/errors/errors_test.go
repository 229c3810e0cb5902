package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	plain := New(TypeInvalidWindow, "window must be >= 1 day")
	if got := plain.Error(); got != "[INVALID_WINDOW] window must be >= 1 day" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(TypeInventoryUnavailable, "describe instances failed", stderrors.New("throttled"))
	if got := wrapped.Error(); got != "[INVENTORY_UNAVAILABLE] describe instances failed: throttled" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsType(t *testing.T) {
	base := New(TypeTelemetryUnavailable, "metric query failed")

	tests := []struct {
		name string
		err  error
		typ  Type
		want bool
	}{
		{"direct match", base, TypeTelemetryUnavailable, true},
		{"direct mismatch", base, TypeInventoryUnavailable, false},
		{"wrapped with fmt", fmt.Errorf("scan: %w", base), TypeTelemetryUnavailable, true},
		{"double wrapped", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", base)), TypeTelemetryUnavailable, true},
		{"plain error", stderrors.New("boom"), TypeTelemetryUnavailable, false},
		{"nil", nil, TypeTelemetryUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsType(tt.err, tt.typ); got != tt.want {
				t.Errorf("IsType(%v, %s) = %v, want %v", tt.err, tt.typ, got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Wrap(TypeCostUnavailable, "cost query failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is does not reach the wrapped cause")
	}
}
