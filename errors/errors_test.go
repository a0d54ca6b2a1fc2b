package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid unit", ErrInvalidUnit, true},
		{"unknown reference", ErrUnknownReference, true},
		{"invalid data", ErrInvalidData, true},
		{"empty input", ErrEmptyInput, true},
		{"parsing failed", ErrParsingFailed, true},
		{"not found", ErrNotFound, false},
		{"reload in flight", ErrReloadInFlight, false},
		{"wrapped invalid unit", fmt.Errorf("row 12: %w", ErrInvalidUnit), true},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"reload in flight", ErrReloadInFlight, true},
		{"query busy", ErrQueryBusy, true},
		{"invalid unit", ErrInvalidUnit, false},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid config", ErrInvalidConfig, true},
		{"missing config", ErrMissingConfig, true},
		{"not found", ErrNotFound, false},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsFatal(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if Classify(ErrInvalidUnit) != ErrorInvalid {
		t.Error("expected invalid unit to classify as invalid")
	}
	if Classify(ErrInvalidConfig) != ErrorFatal {
		t.Error("expected invalid config to classify as fatal")
	}
	if Classify(fmt.Errorf("something else")) != ErrorTransient {
		t.Error("expected unknown error to classify as transient")
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("boom")

	err := Wrap(base, "Store", "ReplaceLocations", "build staging table")
	if err == nil {
		t.Fatal("expected non-nil error")
	}
	want := "Store.ReplaceLocations: build staging table failed: boom"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("expected wrapped error to match base with errors.Is")
	}

	if Wrap(nil, "Store", "Get", "lookup") != nil {
		t.Error("expected nil for nil input")
	}
}

func TestWrapClassified(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name  string
		wrap  func(error, string, string, string) error
		class ErrorClass
	}{
		{"transient", WrapTransient, ErrorTransient},
		{"invalid", WrapInvalid, ErrorInvalid},
		{"fatal", WrapFatal, ErrorFatal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.wrap(base, "RelIndex", "Rebuild", "scan inventory")
			if test.wrap(nil, "RelIndex", "Rebuild", "scan inventory") != nil {
				t.Error("expected nil for nil input")
			}

			var ce *ClassifiedError
			if !errors.As(err, &ce) {
				t.Fatal("expected a ClassifiedError")
			}
			if ce.Class != test.class {
				t.Errorf("expected class %v, got %v", test.class, ce.Class)
			}
			if !errors.Is(err, base) {
				t.Error("expected wrapped error to match base")
			}
			if !strings.Contains(err.Error(), "RelIndex.Rebuild") {
				t.Errorf("expected context in message, got %q", err.Error())
			}
		})
	}
}

func TestClassifiedError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	ce := &ClassifiedError{Class: ErrorInvalid, Err: base}
	if !errors.Is(ce, base) {
		t.Error("expected Unwrap to expose base error")
	}
	if ce.Error() != "boom" {
		t.Errorf("expected message fallback to base error, got %q", ce.Error())
	}
}
