package ppg

import (
	"errors"
	"fmt"
)

// Errors returned by the analysis functions. Typed errors below unwrap to
// one of these.
var (
	ErrData             = errors.New("ppg: invalid input data")
	ErrInvalidParameter = errors.New("ppg: invalid parameter")
	ErrOutOfRange       = errors.New("ppg: window out of range")
	ErrEmptyNotchRange  = errors.New("ppg: empty dicrotic notch range")
	ErrDivisionByZero   = errors.New("ppg: division by zero")
	ErrNoSpectralPeak   = errors.New("ppg: no spectral peak in rate band")
)

// RangeError reports a window that does not fit inside the signal.
type RangeError struct {
	Lower, Upper int
	Length       int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("ppg: window [%d, %d) outside signal of length %d", e.Lower, e.Upper, e.Length)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// NotchError reports systolic and diastolic peaks with no sample between
// them.
type NotchError struct {
	Systolic, Diastolic int // window-relative indices
}

func (e *NotchError) Error() string {
	return fmt.Sprintf("ppg: no samples between systolic peak %d and diastolic peak %d", e.Systolic, e.Diastolic)
}

func (e *NotchError) Unwrap() error { return ErrEmptyNotchRange }

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}
