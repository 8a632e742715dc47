package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ppg/dsp/window"
	"github.com/cwbudde/algo-ppg/internal/testutil"
)

func TestMagnitudePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	testutil.RequireSliceNearlyEqual(t, mag, []float64{5, math.Sqrt2, 0}, 1e-12)

	pow := Power(bins)
	testutil.RequireSliceNearlyEqual(t, pow, []float64{25, 2, 0}, 1e-12)

	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("empty input should give nil")
	}
}

func TestEstimate_SinePeak(t *testing.T) {
	const (
		fs   = 360.0
		freq = 1.2
	)
	x := testutil.DeterministicSine(freq, fs, 1, 3600)

	p, err := Estimate(x, fs)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if p.FFTSize != 4096 {
		t.Fatalf("FFTSize=%d, want 4096", p.FFTSize)
	}
	if len(p.Freqs) != 2049 || len(p.Power) != 2049 {
		t.Fatalf("one-sided length=%d/%d, want 2049", len(p.Freqs), len(p.Power))
	}
	testutil.RequireNearlyEqual(t, "Resolution", p.Resolution, fs/4096, 1e-15)
	testutil.RequireFinite(t, p.Power)

	got, _, ok := p.PeakIn(0.5, 3.5)
	if !ok {
		t.Fatal("no peak found in band")
	}
	if math.Abs(got-freq) > 0.02 {
		t.Fatalf("peak at %.4f Hz, want %.4f", got, freq)
	}
}

func TestEstimate_ParsevalDensity(t *testing.T) {
	// A unit sine carries variance 0.5; the integrated density should
	// match it within the leakage of the window.
	x := testutil.DeterministicSine(2, 360, 1, 3600)
	p, err := Estimate(x, 360, WithWindow(window.TypeRectangular))
	if err != nil {
		t.Fatal(err)
	}
	total := p.TotalPower(0, 180)
	if math.Abs(total-0.5) > 0.01 {
		t.Fatalf("integrated power %.4f, want about 0.5", total)
	}
}

func TestEstimate_MinFFTSize(t *testing.T) {
	x := testutil.DeterministicSine(1, 100, 1, 100)
	p, err := Estimate(x, 100, WithMinFFTSize(1000))
	if err != nil {
		t.Fatal(err)
	}
	if p.FFTSize != 1024 {
		t.Fatalf("FFTSize=%d, want 1024", p.FFTSize)
	}
}

func TestEstimate_ConstantHasNoPeak(t *testing.T) {
	x := make([]float64, 512)
	for i := range x {
		x[i] = 3
	}
	p, err := Estimate(x, 360)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := p.PeakIn(0.5, 3.5); ok {
		t.Fatal("detrended constant should carry no power")
	}

	p, err = Estimate(x, 360, WithoutDetrend(), WithWindow(window.TypeRectangular))
	if err != nil {
		t.Fatal(err)
	}
	if f, _, ok := p.PeakIn(0, 1); !ok || f != 0 {
		t.Fatalf("undetrended constant should peak at DC, got %v %v", f, ok)
	}
}

func TestEstimate_InvalidInput(t *testing.T) {
	if _, err := Estimate([]float64{1}, 360); err == nil {
		t.Fatal("expected error for one sample")
	}
	if _, err := Estimate([]float64{1, 2, 3}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := Estimate([]float64{1, 2, 3}, math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite sample rate")
	}
}

func TestPeakIn_EmptyBand(t *testing.T) {
	p := Periodogram{Freqs: []float64{0, 1, 2}, Power: []float64{1, 2, 1}, Resolution: 1}
	if _, _, ok := p.PeakIn(5, 6); ok {
		t.Fatal("band outside spectrum should report no peak")
	}
	f, pw, ok := p.PeakIn(0, 2)
	if !ok || f != 1 || pw != 2 {
		t.Fatalf("symmetric neighbours should not shift the peak: %v %v %v", f, pw, ok)
	}
}

func TestNextPow2(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1800: 2048, 4096: 4096} {
		if got := nextPow2(in); got != want {
			t.Errorf("nextPow2(%d)=%d, want %d", in, got, want)
		}
	}
}
