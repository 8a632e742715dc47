package biquad

// PadLength returns the number of samples FiltFilt mirrors onto each end of
// the input for a cascade of the given number of sections, before it is
// shortened to fit the input.
func PadLength(sections int) int {
	return 3 * (2*sections + 1)
}

// FiltFilt applies the cascade forward and then backward over x and returns
// a new slice of the same length. The magnitude response is squared and the
// phase response cancels, so features in the output stay aligned with the
// input samples.
//
// Both ends are extended by point reflection about the end samples and each
// pass starts from the steady-state delay line for its first sample, which
// keeps start-up transients out of the returned range:
//
//	Gustafsson, F. "Determining the initial states in forward-backward
//	filtering." IEEE Trans. Signal Processing 44.4 (1996): 988-992.
func FiltFilt(coeffs []Coefficients, x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if len(coeffs) == 0 {
		copy(out, x)
		return out
	}

	pad := PadLength(len(coeffs))
	if pad > n-1 {
		pad = n - 1
	}

	ext := oddExtend(x, pad)
	chain := NewChain(coeffs)

	chain.SeedSteadyState(ext[0])
	chain.ProcessBlock(ext)

	chain.SeedSteadyState(ext[len(ext)-1])
	chain.ProcessBlockReverse(ext)

	copy(out, ext[pad:pad+n])
	return out
}

// oddExtend returns x with pad samples point-reflected about x[0] prepended
// and pad samples point-reflected about x[n-1] appended.
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)

	first, last := x[0], x[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[pad:], x)

	return ext
}
