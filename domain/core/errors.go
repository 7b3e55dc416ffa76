package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Sample construction errors
	ErrSampleTooSmall   = errors.New("sample requires at least two values")
	ErrSequenceLength   = errors.New("sequence length mismatch")
	ErrInvalidSchedule  = errors.New("invalid prefix schedule")
	ErrPrefixOutOfRange = errors.New("prefix length out of range")

	// Numeric domain errors (division guards, never masked)
	ErrZeroMean       = errors.New("mean is zero")
	ErrZeroBase       = errors.New("reference value is zero")
	ErrZeroDispersion = errors.New("dispersion is zero")
	ErrNegativeSqrt   = errors.New("square root of negative value")

	// Comparison errors
	ErrSizeMismatch = errors.New("sample sizes differ")

	// Synthesis errors
	ErrNotErlang     = errors.New("sample is not Erlang-distributed")
	ErrInvalidShape  = errors.New("shape parameter must be positive")
	ErrInvalidRate   = errors.New("rate parameter must be positive")
	ErrMissingSource = errors.New("uniform source is required")
)

// Error constructors with context
func NewLengthError(expected, actual int) error {
	return fmt.Errorf("%w: expected %d values, got %d", ErrSequenceLength, expected, actual)
}

func NewPrefixError(n, size int) error {
	return fmt.Errorf("%w: %d of %d", ErrPrefixOutOfRange, n, size)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewDivisionError(sentinel error, quantity string) error {
	return fmt.Errorf("%w: cannot compute %s", sentinel, quantity)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrSampleTooSmall) ||
		errors.Is(err, ErrSequenceLength) ||
		errors.Is(err, ErrInvalidSchedule) ||
		errors.Is(err, ErrPrefixOutOfRange)
}

func IsNumericDomainError(err error) bool {
	return errors.Is(err, ErrZeroMean) ||
		errors.Is(err, ErrZeroBase) ||
		errors.Is(err, ErrZeroDispersion) ||
		errors.Is(err, ErrNegativeSqrt)
}

func IsSynthesisError(err error) bool {
	return errors.Is(err, ErrNotErlang) ||
		errors.Is(err, ErrInvalidShape) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrMissingSource)
}
