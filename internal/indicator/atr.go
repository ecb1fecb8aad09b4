package indicator

import (
	"errors"
	"math"

	"VolLab/internal/model"
)

// TrueRange computes the per-bar true range:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close, so its true range is high-low alone.
func TrueRange(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			out[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		out[i] = math.Max(
			b.High-b.Low,
			math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)),
		)
	}
	return out
}

// ATR computes the Average True Range as an exponential moving average of
// true range with smoothing factor alpha = 2/(span+1), applied recursively
// bar by bar. The first bar's ATR equals its own true range, so the series
// is defined for every bar with no leading gap.
func ATR(bars []model.Bar, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	tr := TrueRange(bars)
	out := make([]float64, len(tr))
	alpha := 2.0 / (float64(span) + 1.0)
	for i, v := range tr {
		if i == 0 {
			out[i] = v
			continue
		}
		out[i] = alpha*v + (1-alpha)*out[i-1]
	}
	return out, nil
}

// Ratio divides the fast ATR by the slow ATR element-wise. Positions where
// the slow ATR is zero (a flat market) or either input is NaN are NaN,
// never a silent zero.
func Ratio(fast, slow []float64) []float64 {
	n := len(fast)
	if len(slow) < n {
		n = len(slow)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if slow[i] == 0 || math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = fast[i] / slow[i]
	}
	return out
}
