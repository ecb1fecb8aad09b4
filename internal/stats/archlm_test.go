package stats

import (
	"testing"
)

// clusteredReturns alternates calm and turbulent blocks, a strongly
// heteroskedastic pattern the LM test must flag.
func clusteredReturns(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := 0.001
		if (i/20)%2 == 1 {
			v = 0.05
		}
		if i%2 == 1 {
			v = -v
		}
		out[i] = v
	}
	return out
}

func TestARCHLM_DetectsClustering(t *testing.T) {
	returns := clusteredReturns(400)
	for _, lag := range []int{1, 5} {
		res := ARCHLM(returns, lag)
		if res.Failed() {
			t.Fatalf("lag %d: unexpected failure: %v", lag, res.Err)
		}
		if res.LM <= 0 {
			t.Errorf("lag %d: LM statistic should be positive, got %v", lag, res.LM)
		}
		if res.LMPValue >= 0.01 {
			t.Errorf("lag %d: expected very strong clustering, p=%v", lag, res.LMPValue)
		}
		if res.FPValue >= 0.01 {
			t.Errorf("lag %d: expected significant F test, p=%v", lag, res.FPValue)
		}
	}
}

func TestARCHLM_PValuesInRange(t *testing.T) {
	returns := clusteredReturns(200)
	res := ARCHLM(returns, 10)
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.LMPValue < 0 || res.LMPValue > 1 {
		t.Errorf("LM p-value out of range: %v", res.LMPValue)
	}
	if res.FPValue < 0 || res.FPValue > 1 {
		t.Errorf("F p-value out of range: %v", res.FPValue)
	}
}

func TestARCHLM_FailedLagDoesNotAbortOthers(t *testing.T) {
	returns := clusteredReturns(400)
	results := ARCHLMAll(returns, []int{0, 1, 5})
	if !results[0].Failed() {
		t.Error("lag 0 must fail")
	}
	if results[1].Failed() || results[2].Failed() {
		t.Error("valid lags must not be affected by a failing one")
	}
}

func TestARCHLM_DegenerateInputs(t *testing.T) {
	// Constant magnitude: the squared series has zero variance.
	constant := make([]float64, 100)
	for i := range constant {
		constant[i] = 0.01
		if i%2 == 1 {
			constant[i] = -0.01
		}
	}
	if res := ARCHLM(constant, 1); !res.Failed() {
		t.Error("zero-variance squared series must fail, not fabricate a statistic")
	}

	// Too short for the requested lag.
	if res := ARCHLM([]float64{0.01, -0.02, 0.01}, 5); !res.Failed() {
		t.Error("short series must fail")
	}
}
