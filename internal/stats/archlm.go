package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LagResult carries the ARCH-LM statistics for a single lag depth, or the
// error that prevented them from being computed. A failed lag never aborts
// the other lags.
type LagResult struct {
	Lag      int
	LM       float64
	LMPValue float64
	F        float64
	FPValue  float64
	Err      error
}

// Failed reports whether this lag's test could not be computed.
func (r LagResult) Failed() bool { return r.Err != nil }

// ARCHLM runs Engle's LM test for autoregressive conditional
// heteroskedasticity: the squared series is regressed on its own first
// `lag` lags plus a constant, and LM = nobs * R-squared is referred to a
// chi-squared distribution with `lag` degrees of freedom. The companion
// F statistic tests the same null via the regression F test.
func ARCHLM(returns []float64, lag int) LagResult {
	res := LagResult{Lag: lag}
	if lag < 1 {
		res.Err = errors.New("lag must be positive")
		return res
	}
	nobs := len(returns) - lag
	if nobs < lag+2 {
		res.Err = fmt.Errorf("need at least %d observations for lag %d", 2*lag+2, lag)
		return res
	}

	sq := make([]float64, len(returns))
	for i, r := range returns {
		sq[i] = r * r
	}

	// Design matrix: constant plus the lagged squared values.
	x := mat.NewDense(nobs, lag+1, nil)
	y := mat.NewDense(nobs, 1, nil)
	for t := 0; t < nobs; t++ {
		x.Set(t, 0, 1)
		for j := 1; j <= lag; j++ {
			x.Set(t, j, sq[lag+t-j])
		}
		y.Set(t, 0, sq[lag+t])
	}

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		res.Err = fmt.Errorf("regression failed: %w", err)
		return res
	}

	var fitted mat.Dense
	fitted.Mul(x, &beta)

	yMean := stat.Mean(y.RawMatrix().Data, nil)
	var ssr, sst float64
	for t := 0; t < nobs; t++ {
		e := y.At(t, 0) - fitted.At(t, 0)
		ssr += e * e
		d := y.At(t, 0) - yMean
		sst += d * d
	}
	if sst == 0 {
		res.Err = errors.New("squared series has zero variance")
		return res
	}

	r2 := 1 - ssr/sst
	dfDenom := nobs - lag - 1
	if 1-r2 <= 0 || dfDenom <= 0 {
		res.Err = errors.New("degenerate regression fit")
		return res
	}

	res.LM = float64(nobs) * r2
	res.LMPValue = distuv.ChiSquared{K: float64(lag)}.Survival(res.LM)
	res.F = (r2 / float64(lag)) / ((1 - r2) / float64(dfDenom))
	res.FPValue = distuv.F{D1: float64(lag), D2: float64(dfDenom)}.Survival(res.F)
	return res
}

// ARCHLMAll runs the test at each lag depth independently.
func ARCHLMAll(returns []float64, lags []int) []LagResult {
	out := make([]LagResult, len(lags))
	for i, lag := range lags {
		out[i] = ARCHLM(returns, lag)
	}
	return out
}
