package hypothesis

import (
	"fmt"
	"time"

	"VolLab/internal/config"
	"VolLab/internal/indicator"
	"VolLab/internal/model"
	"VolLab/internal/regime"
	"VolLab/internal/stats"

	"gonum.org/v1/gonum/stat"
)

// Verdict is the acceptance decision of the clustering hypothesis.
type Verdict string

const (
	VerdictAccepted Verdict = "accepted"
	VerdictPartial  Verdict = "partially accepted"
	VerdictRejected Verdict = "rejected"
)

// Acceptance scoring cutoffs. Lag-1 autocorrelation of squared returns
// above 0.10 counts double, the high/low volatility ratio above 2.5 counts
// double, and high-volatility phases persisting past 48 hours add one.
const (
	acfStrong     = 0.10
	acfModerate   = 0.05
	ratioDistinct = 2.5
	ratioClear    = 1.5
	durationLongH = 48.0
	acceptScore   = 3
	partialScore  = 2
	maxScore      = 5
)

// ClusteringResult carries everything the clustering pipeline computed:
// the statistics for the report and record, and the aligned series for the
// diagnostic plots.
type ClusteringResult struct {
	Bars  int
	Start time.Time
	End   time.Time

	ARCH []stats.LagResult
	ACF  []float64 // lags 1..ACFDepth of squared returns

	MeanLogReturn float64
	StdLogReturn  float64

	Thresholds   regime.Thresholds
	Labels       []regime.Label
	Dist         regime.Distribution
	VolRatio     float64 // mean high-regime vol over mean low-regime vol
	HighDuration float64 // hours
	LowDuration  float64 // hours

	Score      int
	ScoreNotes []string
	Verdict    Verdict

	// Series aligned to Times (bars[1:]).
	Times   []time.Time
	Returns []float64
	VolFast []float64
	VolSlow []float64
}

// RunClustering executes the volatility-clustering pipeline over the bars.
func RunClustering(bars []model.Bar, cfg *config.Config) (*ClusteringResult, error) {
	if len(bars) < cfg.Clustering.SlowWindow+1 {
		return nil, fmt.Errorf("need at least %d bars, got %d", cfg.Clustering.SlowWindow+1, len(bars))
	}

	returns := indicator.Returns(bars)
	logReturns := indicator.LogReturns(bars)
	times := model.Times(bars)[1:]

	res := &ClusteringResult{
		Bars:          len(bars),
		Start:         bars[0].Time,
		End:           bars[len(bars)-1].Time,
		Times:         times,
		Returns:       returns,
		MeanLogReturn: stat.Mean(logReturns, nil),
		StdLogReturn:  stat.StdDev(logReturns, nil),
	}

	// A lag that errors is carried as a failed result; the rest proceed.
	res.ARCH = stats.ARCHLMAll(returns, cfg.Clustering.ARCHLags)

	acf, err := stats.ACF(indicator.Squared(returns), cfg.Clustering.ACFDepth)
	if err != nil {
		return nil, fmt.Errorf("autocorrelation: %w", err)
	}
	res.ACF = acf

	volFast, err := indicator.RollingStd(returns, cfg.Clustering.FastWindow)
	if err != nil {
		return nil, fmt.Errorf("rolling volatility: %w", err)
	}
	volSlow, err := indicator.RollingStd(returns, cfg.Clustering.SlowWindow)
	if err != nil {
		return nil, fmt.Errorf("rolling volatility: %w", err)
	}
	res.VolFast = volFast
	res.VolSlow = volSlow

	th, err := regime.ComputeThresholds(volFast, cfg.Clustering.PercentileLow, cfg.Clustering.PercentileHigh)
	if err != nil {
		return nil, fmt.Errorf("regime thresholds: %w", err)
	}
	res.Thresholds = th
	res.Labels = regime.Classify(volFast, th)
	res.Dist = regime.Distribute(res.Labels)
	res.VolRatio = regime.MeanWhere(volFast, res.Labels, regime.High) /
		regime.MeanWhere(volFast, res.Labels, regime.Low)
	res.HighDuration = regime.AvgDuration(regime.Indicator(res.Labels, regime.High), times)
	res.LowDuration = regime.AvgDuration(regime.Indicator(res.Labels, regime.Low), times)

	res.score()
	return res, nil
}

func (r *ClusteringResult) score() {
	lag1 := r.ACF[0]
	switch {
	case lag1 > acfStrong:
		r.Score += 2
		r.ScoreNotes = append(r.ScoreNotes, fmt.Sprintf("strong vol persistence (ACF(r2)=%.4f)", lag1))
	case lag1 > acfModerate:
		r.Score++
		r.ScoreNotes = append(r.ScoreNotes, fmt.Sprintf("moderate vol persistence (ACF(r2)=%.4f)", lag1))
	}
	switch {
	case r.VolRatio > ratioDistinct:
		r.Score += 2
		r.ScoreNotes = append(r.ScoreNotes, fmt.Sprintf("very distinct regimes (ratio=%.2fx)", r.VolRatio))
	case r.VolRatio > ratioClear:
		r.Score++
		r.ScoreNotes = append(r.ScoreNotes, fmt.Sprintf("clear regimes (ratio=%.2fx)", r.VolRatio))
	}
	if r.HighDuration > durationLongH {
		r.Score++
		r.ScoreNotes = append(r.ScoreNotes, fmt.Sprintf("persistent high-vol phases (%.1fh)", r.HighDuration))
	}

	switch {
	case r.Score >= acceptScore:
		r.Verdict = VerdictAccepted
	case r.Score >= partialScore:
		r.Verdict = VerdictPartial
	default:
		r.Verdict = VerdictRejected
	}
}
