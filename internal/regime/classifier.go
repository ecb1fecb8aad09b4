package regime

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Label is the per-bar volatility regime.
type Label int

const (
	None Label = iota // rolling volatility undefined at this bar
	Low
	Mid
	High
)

func (l Label) String() string {
	switch l {
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	default:
		return "none"
	}
}

// Thresholds are the global percentile cutoffs of a rolling-volatility series.
type Thresholds struct {
	Low  float64
	High float64
}

// ComputeThresholds takes the pLow and pHigh quantiles over the entire
// defined portion of the series. The thresholds are deliberately global
// (look-ahead): the classification is descriptive, not a live signal.
func ComputeThresholds(vol []float64, pLow, pHigh float64) (Thresholds, error) {
	defined := make([]float64, 0, len(vol))
	for _, v := range vol {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return Thresholds{}, errors.New("no defined volatility values")
	}
	sort.Float64s(defined)
	return Thresholds{
		Low:  stat.Quantile(pLow, stat.LinInterp, defined, nil),
		High: stat.Quantile(pHigh, stat.LinInterp, defined, nil),
	}, nil
}

// Classify labels every bar: below the low threshold is Low, above the high
// threshold is High, in between is Mid. Bars with undefined volatility get
// None, so Low, Mid and High partition exactly the defined bars.
func Classify(vol []float64, th Thresholds) []Label {
	labels := make([]Label, len(vol))
	for i, v := range vol {
		switch {
		case math.IsNaN(v):
			labels[i] = None
		case v < th.Low:
			labels[i] = Low
		case v > th.High:
			labels[i] = High
		default:
			labels[i] = Mid
		}
	}
	return labels
}

// Distribution counts bars per regime.
type Distribution struct {
	Low, Mid, High int
	Defined        int // bars with a label
	Total          int // all bars, including undefined ones
}

// Distribute tallies the regime labels of a classified series.
func Distribute(labels []Label) Distribution {
	d := Distribution{Total: len(labels)}
	for _, l := range labels {
		switch l {
		case Low:
			d.Low++
		case Mid:
			d.Mid++
		case High:
			d.High++
		}
	}
	d.Defined = d.Low + d.Mid + d.High
	return d
}

// Indicator returns the binary in-regime series for one label. Bars with
// undefined volatility are simply not in the regime.
func Indicator(labels []Label, l Label) []bool {
	out := make([]bool, len(labels))
	for i, v := range labels {
		out[i] = v == l
	}
	return out
}

// MeanWhere returns the mean volatility over bars carrying the given label,
// or NaN when no bar does.
func MeanWhere(vol []float64, labels []Label, l Label) float64 {
	sum, n := 0.0, 0
	for i, v := range vol {
		if labels[i] == l && !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// AvgDuration measures volatility clustering as the mean elapsed hours
// between consecutive boundary crossings of a binary regime indicator.
// Fewer than two crossings yields exactly 0, not an error: a regime that
// never alternates has no measurable duration.
func AvgDuration(in []bool, times []time.Time) float64 {
	var crossings []time.Time
	for i := 1; i < len(in) && i < len(times); i++ {
		if in[i] != in[i-1] {
			crossings = append(crossings, times[i])
		}
	}
	if len(crossings) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(crossings); i++ {
		sum += crossings[i].Sub(crossings[i-1]).Hours()
	}
	return sum / float64(len(crossings)-1)
}
