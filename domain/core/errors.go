package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input shape errors
	ErrEmptySample      = errors.New("no data provided")
	ErrLengthMismatch   = errors.New("samples must have equal length")
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrNonNumeric       = errors.New("value is not numeric")

	// Request errors
	ErrUnknownAnalysisType = errors.New("unknown analysis type")
	ErrNoHistory           = errors.New("no analyses found")
)

// Error constructors with context
func NewLengthMismatchError(test string, n1, n2 int) error {
	return fmt.Errorf("%w: %s received %d vs %d observations", ErrLengthMismatch, test, n1, n2)
}

func NewInsufficientDataError(test string, need int) error {
	return fmt.Errorf("%w: %s requires at least %d observations", ErrInsufficientData, test, need)
}

func NewNonNumericError(name, raw string) error {
	return fmt.Errorf("%w: variable %s contains %q", ErrNonNumeric, name, raw)
}

// Error checking helpers
func IsInputShapeError(err error) bool {
	return errors.Is(err, ErrEmptySample) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNonNumeric)
}
