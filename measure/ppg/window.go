package ppg

import "math"

// Window is one analysis segment. All three slices have the same length and
// share storage with the recording; treat them as read-only.
type Window struct {
	Lower, Upper int // [Lower, Upper) in recording samples

	Raw        []float64
	Derivative []float64
	Time       []float64
}

// Len returns the number of samples in the window.
func (w Window) Len() int { return len(w.Raw) }

// ExtractWindow slices [lower, lower+size) out of the raw signal, its
// derivative and the timestamps. It never truncates: a window reaching past
// either end fails with a *RangeError.
func ExtractWindow(lower, size int, raw, deriv, time []float64) (Window, error) {
	n := len(raw)
	if len(deriv) != n || len(time) != n {
		return Window{}, invalidParam("raw, derivative and time lengths differ: %d, %d, %d", n, len(deriv), len(time))
	}
	if size <= 0 {
		return Window{}, invalidParam("window size %d", size)
	}

	if lower < 0 || lower > n || size > n-lower {
		upper := math.MaxInt
		if lower <= math.MaxInt-size {
			upper = lower + size
		}
		return Window{}, &RangeError{Lower: lower, Upper: upper, Length: n}
	}
	upper := lower + size

	return Window{
		Lower:      lower,
		Upper:      upper,
		Raw:        raw[lower:upper:upper],
		Derivative: deriv[lower:upper:upper],
		Time:       time[lower:upper:upper],
	}, nil
}
