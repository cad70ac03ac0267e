package counter

import (
	"errors"
	"fmt"
)

// ConstructError represents a rejected counter or chain construction.
//
// All construction failures are immediate and synchronous; a rejected
// constructor never leaves a partially-wired instance behind.
type ConstructError struct {
	// Code identifies the error category.
	Code ConstructErrorCode

	// Message is a human-readable description.
	Message string

	// Lower, Upper, Start hold the offending bounds for counter errors.
	Lower int
	Upper int
	Start int

	// Digit is the offending digit index for chain errors.
	Digit int
}

// ConstructErrorCode categorizes construction errors.
type ConstructErrorCode string

const (
	// ErrCodeBoundsInverted indicates upper <= lower.
	ErrCodeBoundsInverted ConstructErrorCode = "BOUNDS_INVERTED"

	// ErrCodeStartOutOfRange indicates a start value outside [lower, upper).
	ErrCodeStartOutOfRange ConstructErrorCode = "START_OUT_OF_RANGE"

	// ErrCodeEmptyChain indicates a chain constructed with zero digits.
	ErrCodeEmptyChain ConstructErrorCode = "EMPTY_CHAIN"

	// ErrCodeNilDigit indicates a chain constructed with a nil digit.
	ErrCodeNilDigit ConstructErrorCode = "NIL_DIGIT"
)

// Error implements the error interface.
func (e *ConstructError) Error() string {
	switch e.Code {
	case ErrCodeBoundsInverted, ErrCodeStartOutOfRange:
		return fmt.Sprintf("%s: %s (lower=%d, upper=%d, start=%d)", e.Code, e.Message, e.Lower, e.Upper, e.Start)
	case ErrCodeNilDigit:
		return fmt.Sprintf("%s: %s (digit=%d)", e.Code, e.Message, e.Digit)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsBoundsError reports whether err is a construction error about bounds
// or start values. Uses errors.As to handle wrapped errors.
func IsBoundsError(err error) bool {
	var ce *ConstructError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeBoundsInverted || ce.Code == ErrCodeStartOutOfRange
	}
	return false
}

func newBoundsInvertedError(lower, upper, start int) *ConstructError {
	return &ConstructError{
		Code:    ErrCodeBoundsInverted,
		Message: "upper bound must be greater than lower bound",
		Lower:   lower,
		Upper:   upper,
		Start:   start,
	}
}

func newStartOutOfRangeError(lower, upper, start int) *ConstructError {
	return &ConstructError{
		Code:    ErrCodeStartOutOfRange,
		Message: "start value outside counter range",
		Lower:   lower,
		Upper:   upper,
		Start:   start,
	}
}
