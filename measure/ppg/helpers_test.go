package ppg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ppg/internal/testutil"
)

const testFS = 360.0

// bumpWindow builds a window of n samples whose derivative is the sum of
// Gaussian bumps (centre, amplitude) of width sigma samples.
func bumpWindow(t *testing.T, n int, sigma float64, bumps ...[2]float64) Window {
	t.Helper()

	deriv := make([]float64, n)
	for _, b := range bumps {
		testutil.AddGaussian(deriv, b[0], sigma, b[1])
	}
	raw := make([]float64, n)
	w, err := ExtractWindow(0, n, raw, deriv, testutil.Timebase(n, testFS))
	require.NoError(t, err)
	return w
}

// argminBetween returns the first index of the smallest x[i], lo <= i < hi.
func argminBetween(x []float64, lo, hi int) int {
	best := lo
	for i := lo + 1; i < hi; i++ {
		if x[i] < x[best] {
			best = i
		}
	}
	return best
}
