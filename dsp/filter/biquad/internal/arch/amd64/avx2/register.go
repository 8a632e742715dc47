//go:build amd64 && !purego

// Package avx2 registers four-way unrolled biquad kernels for AVX2 hosts.
// The recursion is serial, so unrolling only removes loop overhead and
// bounds checks; results match the generic kernels bit for bit.
package avx2

import (
	"github.com/cwbudde/algo-ppg/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernels{
		Name:      "avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Forward:   forward,
		Reverse:   reverse,
	})
}

type section struct {
	b0, b1, b2, a1, a2 float64
	d0, d1             float64
}

func (s *section) step(x float64) float64 {
	y := s.b0*x + s.d0
	s.d0 = s.b1*x - s.a1*y + s.d1
	s.d1 = s.b2*x - s.a2*y
	return y
}

func load(c registry.Coefficients, d0, d1 float64) section {
	return section{b0: c.B0, b1: c.B1, b2: c.B2, a1: c.A1, a2: c.A2, d0: d0, d1: d1}
}

func forward(c registry.Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	s := load(c, d0, d1)

	i := 0
	for ; i+3 < len(buf); i += 4 {
		q := buf[i : i+4 : i+4]
		q[0] = s.step(q[0])
		q[1] = s.step(q[1])
		q[2] = s.step(q[2])
		q[3] = s.step(q[3])
	}
	for ; i < len(buf); i++ {
		buf[i] = s.step(buf[i])
	}
	return s.d0, s.d1
}

func reverse(c registry.Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	s := load(c, d0, d1)

	i := len(buf)
	for ; i >= 4; i -= 4 {
		q := buf[i-4 : i : i]
		q[3] = s.step(q[3])
		q[2] = s.step(q[2])
		q[1] = s.step(q[1])
		q[0] = s.step(q[0])
	}
	for i--; i >= 0; i-- {
		buf[i] = s.step(buf[i])
	}
	return s.d0, s.d1
}
