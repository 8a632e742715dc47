package frequency_test

import (
	"fmt"

	frequencystats "github.com/cwbudde/algo-ppg/stats/frequency"
)

func ExampleCalculate() {
	freqs := []float64{0, 1, 2, 3, 4}
	power := []float64{0, 1, 2, 1, 0}
	s := frequencystats.Calculate(freqs, power, 0, 4)
	fmt.Printf("centroid=%.1f rolloff=%.1f peak=%.1f\n", s.Centroid, s.Rolloff, s.PeakFreq)

	// Output:
	// centroid=2.0 rolloff=3.0 peak=2.0
}

func ExampleFlatness() {
	flat := frequencystats.Flatness([]float64{1, 1, 1, 1})
	fmt.Printf("flatness=%.1f\n", flat)

	// Output:
	// flatness=1.0
}
