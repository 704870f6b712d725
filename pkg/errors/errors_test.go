package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidExpression, cause, "evaluate GridTop")

	if err.Code != ErrCodeInvalidExpression {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidExpression)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnknownVariable, "test"),
			code:     ErrCodeUnknownVariable,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnknownVariable, "test"),
			code:     ErrCodeDivisionByZero,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNoConvertibleZones, New(ErrCodeIncompleteSection, "inner"), "outer"),
			code:     ErrCodeNoConvertibleZones,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeMalformedLine, "test"),
			expected: ErrCodeMalformedLine,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsSoft(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "invalid expression is soft",
			err:      New(ErrCodeInvalidExpression, "bad token"),
			expected: true,
		},
		{
			name:     "unknown variable is soft",
			err:      New(ErrCodeUnknownVariable, "unknown [Foo]"),
			expected: true,
		},
		{
			name:     "division by zero is soft",
			err:      New(ErrCodeDivisionByZero, "division by zero"),
			expected: true,
		},
		{
			name:     "incomplete section is soft",
			err:      New(ErrCodeIncompleteSection, "missing GridRight"),
			expected: true,
		},
		{
			name:     "no convertible zones is hard",
			err:      New(ErrCodeNoConvertibleZones, "empty zone set"),
			expected: false,
		},
		{
			name:     "plain error is hard",
			err:      errors.New("plain"),
			expected: false,
		},
		{
			name:     "wrapped soft code stays soft",
			err:      Wrap(ErrCodeDivisionByZero, errors.New("inner"), "GridLeft"),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSoft(tt.err); got != tt.expected {
				t.Errorf("IsSoft() = %v, want %v", got, tt.expected)
			}
		})
	}
}
