package biquad

import (
	"testing"
)

// twoSectionCoeffs returns two biquad sections for a 4th-order-like cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}
	if c.Section(1).Coefficients != twoSectionCoeffs()[1] {
		t.Fatalf("section 1 coefficients mismatch: %v", c.Section(1).Coefficients)
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs)

	for i, x := range []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8} {
		ref := section2.ProcessSample(section1.ProcessSample(x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, 0.1, -0.4}

	ref := NewChain(twoSectionCoeffs())
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	got := append([]float64(nil), input...)
	NewChain(twoSectionCoeffs()).ProcessBlock(got)

	for i := range got {
		if !almostEqual(got[i], want[i], eps) {
			t.Errorf("sample %d: block=%.15f, sample=%.15f", i, got[i], want[i])
		}
	}
}

func TestChain_SeedSteadyState(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs)

	const level = -2.5
	c.SeedSteadyState(level)

	want := level * coeffs[0].DCGain() * coeffs[1].DCGain()
	for i := range 64 {
		if y := c.ProcessSample(level); !almostEqual(y, want, 1e-12) {
			t.Fatalf("sample %d: got %v, want steady %v", i, y, want)
		}
	}
}

func TestChain_Reset(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	c.ProcessSample(-0.5)

	c.Reset()
	for i, st := range c.State() {
		if st != [2]float64{0, 0} {
			t.Fatalf("section %d state not zero after reset: %v", i, st)
		}
	}
}

func TestChain_Empty(t *testing.T) {
	c := NewChain(nil)
	if got := c.ProcessSample(0.75); got != 0.75 {
		t.Fatalf("empty chain should pass through, got %v", got)
	}
	if c.Order() != 0 {
		t.Fatalf("empty chain order: %d", c.Order())
	}
}
