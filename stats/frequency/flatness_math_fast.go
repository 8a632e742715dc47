//go:build fastmath

package frequency

import "github.com/meko-christian/algo-approx"

func mathLog(x float64) float64 { return approx.FastLog(x) }

func mathExp(x float64) float64 { return approx.FastExp(x) }
