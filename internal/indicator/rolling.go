package indicator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// RollingStd computes the trailing sample standard deviation over the given
// window. The first window-1 positions are NaN: there is no defined value
// until a full window of observations exists.
func RollingStd(xs []float64, window int) ([]float64, error) {
	if window < 2 {
		return nil, errors.New("window must be at least 2")
	}
	out := make([]float64, len(xs))
	for i := range xs {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.StdDev(xs[i-window+1:i+1], nil)
	}
	return out, nil
}
