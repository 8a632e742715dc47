// Package diff computes numerical derivatives of sampled signals.
package diff

import (
	"errors"
	"fmt"
)

var (
	errTooShort       = errors.New("gradient needs at least 2 samples")
	errLengthMismatch = errors.New("samples and coordinates must have same length")
	errNonIncreasing  = errors.New("coordinates must be strictly increasing")
)

// Gradient returns dy/dx at every sample of y, where x holds the sample
// coordinates (typically timestamps in seconds).
//
// Interior points use the second-order central difference, exact for
// quadratics even when the spacing is uneven. The first and last points use
// first-order one-sided differences. The output has the same length as y.
func Gradient(y, x []float64) ([]float64, error) {
	n := len(y)
	if len(x) != n {
		return nil, fmt.Errorf("%w: %d vs %d", errLengthMismatch, n, len(x))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", errTooShort, n)
	}

	out := make([]float64, n)

	h0 := x[1] - x[0]
	hn := x[n-1] - x[n-2]
	if !(h0 > 0) || !(hn > 0) {
		return nil, errNonIncreasing
	}
	out[0] = (y[1] - y[0]) / h0
	out[n-1] = (y[n-1] - y[n-2]) / hn

	for i := 1; i < n-1; i++ {
		hs := x[i] - x[i-1]
		hd := x[i+1] - x[i]
		if !(hs > 0) || !(hd > 0) {
			return nil, fmt.Errorf("%w: at index %d", errNonIncreasing, i)
		}

		if hs == hd {
			out[i] = (y[i+1] - y[i-1]) / (2 * hs)
			continue
		}

		a := -hd / (hs * (hd + hs))
		b := (hd - hs) / (hd * hs)
		c := hs / (hd * (hd + hs))
		out[i] = a*y[i-1] + b*y[i] + c*y[i+1]
	}

	return out, nil
}
