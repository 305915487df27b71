package common

import (
	"errors"
	"testing"
)

func TestAppError(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "bad value", ErrInvalidInput)
	if got := err.Error(); got != "CONFIG_ERROR: bad value: invalid input" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("should unwrap to ErrInvalidInput")
	}

	bare := NewAppError("INTERNAL", "boom", nil)
	if got := bare.Error(); got != "INTERNAL: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
	wrapped := WrapError(ErrNotFound, "loading invoice")
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("should preserve the cause")
	}
	if wrapped.Error() != "loading invoice: resource not found" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}
