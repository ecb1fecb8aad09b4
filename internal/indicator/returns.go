package indicator

import (
	"math"

	"VolLab/internal/model"
)

// Returns computes simple close-over-close returns. The result has one
// element fewer than the input and is aligned to bars[1:].
func Returns(bars []model.Bar) []float64 {
	if len(bars) < 2 {
		return nil
	}
	out := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		out[i-1] = (bars[i].Close - bars[i-1].Close) / bars[i-1].Close
	}
	return out
}

// LogReturns computes log close-over-close returns, aligned to bars[1:].
func LogReturns(bars []model.Bar) []float64 {
	if len(bars) < 2 {
		return nil
	}
	out := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		out[i-1] = math.Log(bars[i].Close / bars[i-1].Close)
	}
	return out
}

// Squared returns the element-wise square of a series.
func Squared(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * x
	}
	return out
}
