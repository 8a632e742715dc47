package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) of the section on the unit circle at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 without complex arithmetic.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)

	num := (c.B0-c.B2)*(c.B0-c.B2) + c.B1*c.B1 + (c.B1*(c.B0+c.B2)+c.B0*c.B2*cw)*cw
	den := (1-c.A2)*(1-c.A2) + c.A1*c.A1 + (c.A1*(c.A2+1)+cw*c.A2)*cw
	return num / den
}

// Response is the product of the section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns the single-pass cascade magnitude in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ZeroPhaseGain returns the linear gain FiltFilt applies at freqHz: the
// squared cascade magnitude, with no phase shift.
func (c *Chain) ZeroPhaseGain(freqHz, sampleRate float64) float64 {
	g := 1.0
	for i := range c.sections {
		g *= c.sections[i].MagnitudeSquared(freqHz, sampleRate)
	}
	return g
}

// ImpulseResponse runs a unit impulse through a zeroed copy of the cascade
// state and returns n output samples. The chain's own state is untouched.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	defer func() {
		for i := range c.sections {
			c.sections[i].SetState(saved[i])
		}
	}()

	c.Reset()
	ir := make([]float64, n)
	for i := range ir {
		x := 0.0
		if i == 0 {
			x = 1
		}
		ir[i] = c.ProcessSample(x)
	}
	return ir
}
