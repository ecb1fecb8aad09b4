package hypothesis

import (
	"math"
	"testing"
	"time"

	"VolLab/internal/config"
	"VolLab/internal/model"
	"VolLab/internal/regime"
)

// barsFromReturns builds an hourly bar series where each close moves by the
// given simple return over the previous close.
func barsFromReturns(returns []float64, start float64) []model.Bar {
	bars := make([]model.Bar, len(returns)+1)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := start
	bars[0] = model.Bar{Time: t0, Open: price, High: price, Low: price, Close: price}
	for i, r := range returns {
		open := price
		price = price * (1 + r)
		bars[i+1] = model.Bar{
			Time:  t0.Add(time.Duration(i+1) * time.Hour),
			Open:  open,
			High:  math.Max(open, price),
			Low:   math.Min(open, price),
			Close: price,
		}
	}
	return bars
}

// blockReturns alternates calm and turbulent blocks of the given length,
// the textbook clustering pattern.
func blockReturns(n, block int) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := 0.001
		if (i/block)%2 == 1 {
			v = 0.05
		}
		if i%2 == 1 {
			v = -v
		}
		out[i] = v
	}
	return out
}

func clusteringConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Clustering.ARCHLags = []int{1, 5}
	cfg.Clustering.ACFDepth = 10
	cfg.Clustering.FastWindow = 24
	cfg.Clustering.SlowWindow = 48
	// The synthetic series has flat volatility plateaus; interior cutoffs
	// keep both thresholds inside the transition ramps.
	cfg.Clustering.PercentileLow = 0.4
	cfg.Clustering.PercentileHigh = 0.6
	return cfg
}

func TestRunClustering_AcceptsClusteredSeries(t *testing.T) {
	bars := barsFromReturns(blockReturns(600, 60), 2000)
	cfg := clusteringConfig()

	res, err := RunClustering(bars, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Bars != 600+1 || len(res.Returns) != 600 || len(res.Times) != 600 {
		t.Fatalf("series bookkeeping wrong: bars=%d returns=%d times=%d", res.Bars, len(res.Returns), len(res.Times))
	}

	for _, lr := range res.ARCH {
		if lr.Failed() {
			t.Fatalf("lag %d failed: %v", lr.Lag, lr.Err)
		}
		if lr.LMPValue >= 0.01 {
			t.Errorf("lag %d: expected strong ARCH effect, p=%v", lr.Lag, lr.LMPValue)
		}
	}

	if res.ACF[0] <= acfStrong {
		t.Errorf("lag-1 ACF of squared returns should be strong, got %v", res.ACF[0])
	}
	if res.VolRatio <= ratioDistinct {
		t.Errorf("regimes should be very distinct, ratio=%v", res.VolRatio)
	}
	if res.HighDuration <= durationLongH {
		t.Errorf("60-bar turbulent blocks should persist past %vh, got %v", durationLongH, res.HighDuration)
	}

	if res.Dist.Low+res.Dist.Mid+res.Dist.High != res.Dist.Defined {
		t.Errorf("regime counts must partition defined bars: %+v", res.Dist)
	}

	if res.Score < acceptScore || res.Verdict != VerdictAccepted {
		t.Errorf("want accepted with score >= %d, got %v score=%d", acceptScore, res.Verdict, res.Score)
	}
	if len(res.ScoreNotes) == 0 {
		t.Error("an accepted run must explain its score")
	}
}

func TestRunClustering_RejectsHomogeneousSeries(t *testing.T) {
	// Alternating magnitudes with period two: the squared series is
	// anti-persistent and the rolling volatility is flat.
	returns := make([]float64, 600)
	for i := range returns {
		v := 0.001
		if i%2 == 1 {
			v = -0.002
		}
		returns[i] = v
	}
	bars := barsFromReturns(returns, 2000)

	res, err := RunClustering(bars, clusteringConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict != VerdictRejected {
		t.Errorf("homogeneous series must be rejected, got %v (score=%d, notes=%v)",
			res.Verdict, res.Score, res.ScoreNotes)
	}
}

func TestRunClustering_TooFewBars(t *testing.T) {
	bars := barsFromReturns(blockReturns(30, 10), 2000)
	if _, err := RunClustering(bars, clusteringConfig()); err == nil {
		t.Error("expected error for series shorter than the slow window")
	}
}

func TestRunClustering_RegimeSeriesAligned(t *testing.T) {
	bars := barsFromReturns(blockReturns(600, 60), 2000)
	res, err := RunClustering(bars, clusteringConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Labels) != len(res.VolFast) || len(res.VolFast) != len(res.Returns) {
		t.Fatalf("labels, volatility and returns must share one index space")
	}
	for i, v := range res.VolFast {
		if math.IsNaN(v) != (res.Labels[i] == regime.None) {
			t.Fatalf("index %d: NaN volatility and unlabeled regime must coincide", i)
		}
	}
}
