// Package generic registers the portable biquad kernels.
package generic

import (
	"github.com/cwbudde/algo-ppg/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernels{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Forward:   forward,
		Reverse:   reverse,
	})
}

func forward(c registry.Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	for i, x := range buf {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}
	return d0, d1
}

func reverse(c registry.Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	for i := len(buf) - 1; i >= 0; i-- {
		x := buf[i]
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}
	return d0, d1
}
