package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions.
//
// Every failure here is unrecoverable at the point of detection: repeating a
// deterministic evaluation with the same input cannot change the outcome, so
// nothing is retried. Constant-output degeneracy is not an error; estimators
// signal it in-band with NaN indices.
var (
	// ErrConfiguration covers invalid run settings: unknown distribution
	// family, invalid sample counts, odd or too-small Morris level counts.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrShape covers dimension mismatches between samples, distribution
	// parameters, and evaluation output.
	ErrShape = errors.New("dimension mismatch")

	// ErrModelEvaluation covers evaluation functions that fail outright or
	// produce non-finite output.
	ErrModelEvaluation = errors.New("model evaluation failed")
)

// Error constructors with context

func NewConfigurationError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrConfiguration, field, reason)
}

func NewShapeError(what string, wantRows, wantCols, gotRows, gotCols int) error {
	return fmt.Errorf("%w: %s must be %dx%d, got %dx%d",
		ErrShape, what, wantRows, wantCols, gotRows, gotCols)
}

func NewModelEvaluationError(row int, sample []float64, reason string) error {
	return fmt.Errorf("%w: %s at sample row %d (poi values %v)",
		ErrModelEvaluation, reason, row, sample)
}

// Error checking helpers

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}

func IsModelEvaluationError(err error) bool {
	return errors.Is(err, ErrModelEvaluation)
}
