package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-ppg/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// DCGain returns H(1), the section gain for a constant input.
// Returns 0 when the denominator vanishes at DC.
func (c *Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return 0
	}
	return (c.B0 + c.B1 + c.B2) / den
}

// StepState returns the delay-line state the section settles into after an
// infinitely long unit-step input. Scaling it by the first input sample
// starts the filter without a transient (Gustafsson initial conditions).
func (c *Coefficients) StepState() [2]float64 {
	k := c.DCGain()
	d1 := c.B2 - k*c.A2
	d0 := d1 + c.B1 - k*c.A1
	return [2]float64{d0, d1}
}

// Section is a single biquad filter with coefficients and internal state.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	kernels     *archregistry.Kernels
	kernelsOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	s.d0, s.d1 = blockKernels().Forward(s.archCoefficients(), s.d0, s.d1, buf)
}

// ProcessBlockReverse filters buf in-place from the last sample to the
// first. Used for the backward pass of zero-phase filtering.
func (s *Section) ProcessBlockReverse(buf []float64) {
	s.d0, s.d1 = blockKernels().Reverse(s.archCoefficients(), s.d0, s.d1, buf)
}

func (s *Section) archCoefficients() archregistry.Coefficients {
	return archregistry.Coefficients{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2}
}

func blockKernels() *archregistry.Kernels {
	kernelsOnce.Do(func() {
		kernels = archregistry.Global.Lookup(cpu.DetectFeatures())
		if kernels == nil {
			panic("biquad: no block kernels registered")
		}
	})
	return kernels
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
