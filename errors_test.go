package lob

import (
	"errors"
	"fmt"
	"testing"
)

var allErrors = []error{
	ErrFreed,
	ErrMalformedHex,
	ErrInvalidPosition,
	ErrInvalidLength,
	ErrInvalidOffset,
	ErrInvalidStart,
	ErrMissingPattern,
	ErrOutOfBounds,
	ErrUnsupported,
	ErrNamedSavepoint,
	ErrUnnamedSavepoint,
}

func TestErrors(t *testing.T) {
	// Verify all errors are defined and distinct
	for i, err := range allErrors {
		if err == nil {
			t.Errorf("error at index %d is nil", i)
		}
	}

	seen := make(map[string]int)
	for i, err := range allErrors {
		msg := err.Error()
		if prev, ok := seen[msg]; ok {
			t.Errorf("error at index %d has same message as index %d: %q", i, prev, msg)
		}
		seen[msg] = i
	}
}

// TestErrorsDoNotAlias verifies that no sentinel matches another under
// errors.Is. The driver maps each kind to a different vendor code, so an
// invalid position reported as an invalid length would surface the wrong
// SQLSTATE to the application.
func TestErrorsDoNotAlias(t *testing.T) {
	for i, a := range allErrors {
		for j, b := range allErrors {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("other"), ""},
		{ErrFreed, "freed"},
		{fmt.Errorf("wrapped: %w", ErrInvalidStart), "invalid_start"},
		{ErrUnnamedSavepoint, "unnamed_savepoint"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	// Every sentinel has a distinct kind name.
	names := make(map[string]bool)
	for _, err := range allErrors {
		k := Kind(err)
		if k == "" {
			t.Errorf("Kind(%v) is empty", err)
		}
		if names[k] {
			t.Errorf("Kind %q reported for two sentinels", k)
		}
		names[k] = true
	}
}

// TestKindThroughPackageErrors verifies that errors returned by real
// operations, which carry positional detail, still report their kind.
func TestKindThroughPackageErrors(t *testing.T) {
	b := New([]byte{1, 2, 3})
	_, err := b.Bytes(0, 1)
	if Kind(err) != "invalid_position" {
		t.Errorf("Kind(Bytes(0, 1)) = %q, want invalid_position", Kind(err))
	}
	_, err = b.Bytes(1, 4)
	if Kind(err) != "invalid_length" {
		t.Errorf("Kind(Bytes(1, 4)) = %q, want invalid_length", Kind(err))
	}
}
