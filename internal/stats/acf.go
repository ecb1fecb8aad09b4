package stats

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ACF returns the sample autocorrelation of xs at lags 1..maxLag, computed
// as the Pearson correlation between the series and its lagged copy.
func ACF(xs []float64, maxLag int) ([]float64, error) {
	if maxLag < 1 {
		return nil, errors.New("maxLag must be positive")
	}
	if len(xs) < maxLag+2 {
		return nil, errors.New("series too short for requested lag depth")
	}
	out := make([]float64, maxLag)
	for k := 1; k <= maxLag; k++ {
		out[k-1] = stat.Correlation(xs[:len(xs)-k], xs[k:], nil)
	}
	return out, nil
}
