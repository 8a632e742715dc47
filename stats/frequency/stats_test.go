package frequency

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// grid returns bins 0, 1, ..., n-1 Hz.
func grid(n int) []float64 {
	f := make([]float64, n)
	for i := range f {
		f[i] = float64(i)
	}
	return f
}

func singleBin(n, bin int, p float64) []float64 {
	out := make([]float64, n)
	out[bin] = p
	return out
}

func flat(n int, p float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestCalculate_SingleBin(t *testing.T) {
	s := Calculate(grid(11), singleBin(11, 3, 4), 0, 10)

	if s.Bins != 11 {
		t.Fatalf("Bins=%d, want 11", s.Bins)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"Power", s.Power, 4},
		{"PeakFreq", s.PeakFreq, 3},
		{"PeakPower", s.PeakPower, 4},
		{"Centroid", s.Centroid, 3},
		{"Spread", s.Spread, 0},
		{"Flatness", s.Flatness, 0},
		{"Rolloff", s.Rolloff, 3},
		{"Bandwidth", s.Bandwidth, 1},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want, tolerance) {
			t.Errorf("%s=%v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestCalculate_Flat(t *testing.T) {
	s := Calculate(grid(11), flat(11, 2), 0, 10)

	if !almostEqual(s.Flatness, 1, tolerance) {
		t.Errorf("Flatness=%v, want 1", s.Flatness)
	}
	if !almostEqual(s.Centroid, 5, tolerance) {
		t.Errorf("Centroid=%v, want 5", s.Centroid)
	}
	if !almostEqual(s.Spread, math.Sqrt(10), tolerance) {
		t.Errorf("Spread=%v, want sqrt(10)", s.Spread)
	}
	// 85% of 22 is 18.7, first reached after ten bins.
	if s.Rolloff != 9 {
		t.Errorf("Rolloff=%v, want 9", s.Rolloff)
	}
	if !almostEqual(s.Power, 22, tolerance) {
		t.Errorf("Power=%v, want 22", s.Power)
	}
	if s.Bandwidth != 10 {
		t.Errorf("Bandwidth=%v, want full span 10", s.Bandwidth)
	}
}

func TestCalculate_BandRestriction(t *testing.T) {
	p := singleBin(11, 3, 4)
	p[8] = 1

	s := Calculate(grid(11), p, 4, 10)
	if s.Bins != 7 {
		t.Fatalf("Bins=%d, want 7", s.Bins)
	}
	if s.PeakFreq != 8 || s.PeakPower != 1 {
		t.Fatalf("peak=(%v, %v), want (8, 1)", s.PeakFreq, s.PeakPower)
	}
	if !almostEqual(s.Power, 1, tolerance) {
		t.Fatalf("Power=%v, want 1", s.Power)
	}
}

func TestCalculate_EmptyBand(t *testing.T) {
	if s := Calculate(grid(11), flat(11, 1), 20, 30); s != (Stats{}) {
		t.Fatalf("expected zero Stats, got %+v", s)
	}
	if s := Calculate(nil, nil, 0, 1); s != (Stats{}) {
		t.Fatalf("expected zero Stats for empty spectrum, got %+v", s)
	}
}

func TestCalculate_SilentBand(t *testing.T) {
	s := Calculate(grid(5), make([]float64, 5), 0, 4)
	if s.Centroid != 0 || s.Bandwidth != 0 || s.Rolloff != 0 || s.Flatness != 0 {
		t.Fatalf("silent band should have zero descriptors: %+v", s)
	}
}

func TestBand(t *testing.T) {
	f := []float64{0, 0.5, 1, 1.5, 2, 2.5}
	p := []float64{10, 11, 12, 13, 14, 15}

	gf, gp := Band(f, p, 0.75, 2)
	if len(gf) != 3 || gf[0] != 1 || gf[2] != 2 {
		t.Fatalf("freqs=%v, want [1 1.5 2]", gf)
	}
	if gp[0] != 12 || gp[2] != 14 {
		t.Fatalf("power=%v, want [12 13 14]", gp)
	}
}

func TestCentroid(t *testing.T) {
	if got := Centroid([]float64{1, 2}, []float64{1, 3}); !almostEqual(got, 1.75, tolerance) {
		t.Fatalf("Centroid=%v, want 1.75", got)
	}
	if got := Centroid([]float64{1, 2}, []float64{0, 0}); got != 0 {
		t.Fatalf("Centroid of silence=%v, want 0", got)
	}
}

func TestFlatness(t *testing.T) {
	tests := []struct {
		name  string
		power []float64
		want  float64
	}{
		{"empty", nil, 0},
		{"flat", []float64{3, 3, 3}, 1},
		{"zero bin", []float64{1, 0, 1}, 0},
		// geometric mean 2, arithmetic mean 2.5
		{"two levels", []float64{1, 4}, 0.8},
	}
	for _, tc := range tests {
		if got := Flatness(tc.power); !almostEqual(got, tc.want, tolerance) {
			t.Errorf("%s: Flatness=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRolloff(t *testing.T) {
	f := grid(4)
	p := []float64{1, 1, 1, 1}
	if got := Rolloff(f, p, 0.5); got != 1 {
		t.Fatalf("Rolloff(0.5)=%v, want 1", got)
	}
	if got := Rolloff(f, p, 1); got != 3 {
		t.Fatalf("Rolloff(1)=%v, want 3", got)
	}
	if got := Rolloff(nil, nil, 0.85); got != 0 {
		t.Fatalf("Rolloff(empty)=%v, want 0", got)
	}
}

func TestBandwidth_Triangle(t *testing.T) {
	// Peak 4 at 2 Hz, half power 2 reached at 1 Hz and 3 Hz.
	got := Bandwidth(grid(5), []float64{0, 2, 4, 2, 0})
	if !almostEqual(got, 2, tolerance) {
		t.Fatalf("Bandwidth=%v, want 2", got)
	}
}

func BenchmarkCalculate(b *testing.B) {
	f := grid(4097)
	p := make([]float64, len(f))
	for i := range p {
		p[i] = 1 / (1 + math.Abs(float64(i)-300))
	}

	for b.Loop() {
		_ = Calculate(f, p, 10, 2000)
	}
}
