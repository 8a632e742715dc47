package pass

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ppg/dsp/filter/biquad"
)

func TestButterworthLP_SectionCount(t *testing.T) {
	sr := 360.0
	for order := 1; order <= 8; order++ {
		want := (order + 1) / 2
		if got := ButterworthLP(3, order, sr); len(got) != want {
			t.Fatalf("order %d: sections=%d, want %d", order, len(got), want)
		}
		if got := ButterworthHP(0.8, order, sr); len(got) != want {
			t.Fatalf("HP order %d: sections=%d, want %d", order, len(got), want)
		}
	}
}

func TestButterworth_OddOrder_HasFirstOrderSection(t *testing.T) {
	for _, order := range []int{1, 3, 5} {
		sections := ButterworthLP(3, order, 360)
		last := sections[len(sections)-1]
		if last.B2 != 0 || last.A2 != 0 {
			t.Fatalf("order %d: last section not first-order: %+v", order, last)
		}
	}
}

func TestButterworthLP_Minus3dBAtCutoff(t *testing.T) {
	sr := 360.0
	for _, order := range []int{1, 2, 3, 4, 6} {
		c := biquad.NewChain(ButterworthLP(3, order, sr))
		db := c.MagnitudeDB(3, sr)
		if !almostEqual(db, -3.0103, 0.01) {
			t.Fatalf("order %d: |H(fc)|=%.4f dB, want -3.01", order, db)
		}
		if dc := c.MagnitudeDB(0, sr); !almostEqual(dc, 0, 1e-9) {
			t.Fatalf("order %d: DC gain %.6f dB, want 0", order, dc)
		}
	}
}

func TestButterworthHP_Minus3dBAtCutoff(t *testing.T) {
	sr := 360.0
	for _, order := range []int{1, 2, 3, 4, 6} {
		c := biquad.NewChain(ButterworthHP(0.8, order, sr))
		db := c.MagnitudeDB(0.8, sr)
		if !almostEqual(db, -3.0103, 0.01) {
			t.Fatalf("order %d: |H(fc)|=%.4f dB, want -3.01", order, db)
		}
		if ny := c.MagnitudeDB(sr/2-1e-6, sr); !almostEqual(ny, 0, 1e-3) {
			t.Fatalf("order %d: Nyquist gain %.6f dB, want 0", order, ny)
		}
	}
}

func TestButterworthLP_HigherOrderSteeperRolloff(t *testing.T) {
	sr := 360.0
	prev := 0.0
	for _, order := range []int{1, 2, 4, 6, 8} {
		atten := -biquad.NewChain(ButterworthLP(3, order, sr)).MagnitudeDB(12, sr)
		if atten <= prev {
			t.Fatalf("order %d: attenuation %.2f dB not above order below (%.2f dB)", order, atten, prev)
		}
		prev = atten
	}
}

func TestButterworth_FourthOrderAttenuation(t *testing.T) {
	// 4th order rolls off ~24 dB/octave: two octaves above 3 Hz is ~48 dB down.
	sr := 360.0
	lp := biquad.NewChain(ButterworthLP(3, 4, sr))
	if atten := -lp.MagnitudeDB(12, sr); atten < 45 {
		t.Fatalf("LP attenuation at 12 Hz = %.2f dB, want >= 45", atten)
	}

	hp := biquad.NewChain(ButterworthHP(0.8, 4, sr))
	if atten := -hp.MagnitudeDB(0.2, sr); atten < 45 {
		t.Fatalf("HP attenuation at 0.2 Hz = %.2f dB, want >= 45", atten)
	}
}

func TestButterworth_AllSectionsStable(t *testing.T) {
	for _, sr := range []float64{100, 125, 250, 360, 500, 1000} {
		for _, order := range []int{1, 2, 3, 4, 6, 8} {
			for _, c := range ButterworthLP(3, order, sr) {
				assertFiniteCoefficients(t, c)
			}
			for _, c := range ButterworthHP(0.8, order, sr) {
				assertFiniteCoefficients(t, c)
			}
			if !biquad.AllStable(ButterworthLP(3, order, sr)) {
				t.Fatalf("unstable LP sr=%v order=%d", sr, order)
			}
			if !biquad.AllStable(ButterworthHP(0.8, order, sr)) {
				t.Fatalf("unstable HP sr=%v order=%d", sr, order)
			}
		}
	}
}

func TestButterworth_InvalidInputs(t *testing.T) {
	cases := []struct {
		name  string
		freq  float64
		order int
		sr    float64
	}{
		{"negative order", 3, -1, 360},
		{"zero order", 3, 0, 360},
		{"zero cutoff", 0, 4, 360},
		{"at nyquist", 180, 4, 360},
		{"above nyquist", 200, 4, 360},
		{"zero rate", 3, 4, 0},
		{"nan cutoff", math.NaN(), 4, 360},
	}
	for _, tc := range cases {
		if got := ButterworthLP(tc.freq, tc.order, tc.sr); got != nil {
			t.Fatalf("%s: expected nil LP, got %v", tc.name, got)
		}
		if got := ButterworthHP(tc.freq, tc.order, tc.sr); got != nil {
			t.Fatalf("%s: expected nil HP, got %v", tc.name, got)
		}
	}
}

func TestButterworthQ_KnownValues(t *testing.T) {
	// Order 2, index 0: Q = 1/(2*sin(pi/4)) = 1/sqrt(2)
	if got := butterworthQ(2, 0); !almostEqual(got, 1/math.Sqrt2, 1e-12) {
		t.Fatalf("order=2 index=0: Q=%.10f", got)
	}

	// Order 4: the two section Qs multiply to 1/sqrt(2).
	q := butterworthQ(4, 0) * butterworthQ(4, 1)
	if !almostEqual(q, 1/math.Sqrt2, 1e-12) {
		t.Fatalf("order=4 Q product=%.10f", q)
	}
}

func TestValidCutoff(t *testing.T) {
	if !ValidCutoff(3, 360) {
		t.Fatal("3 Hz at 360 Hz should be valid")
	}
	for _, tc := range [][2]float64{{0, 360}, {-1, 360}, {180, 360}, {3, -360}, {3, math.Inf(1)}} {
		if ValidCutoff(tc[0], tc[1]) {
			t.Fatalf("ValidCutoff(%v, %v) should be false", tc[0], tc[1])
		}
	}
}

func TestRBJ_InvalidReturnsZero(t *testing.T) {
	if c := LowpassRBJ(200, 0.7, 360); c != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients, got %+v", c)
	}
	if c := HighpassRBJ(0, 0.7, 360); c != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients, got %+v", c)
	}
	if c := LowpassRBJ(3, -1, 360); c == (biquad.Coefficients{}) {
		t.Fatal("non-positive q should fall back to Butterworth q")
	}
}
