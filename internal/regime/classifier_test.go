package regime

import (
	"math"
	"testing"
	"time"
)

func hourlyTimes(n int) []time.Time {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return times
}

func TestClassify_PartitionsDefinedBars(t *testing.T) {
	nan := math.NaN()
	vol := []float64{nan, nan, 0.001, 0.002, 0.003, 0.004, 0.005, 0.010, 0.020, 0.002}

	th, err := ComputeThresholds(vol, 0.25, 0.75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th.Low >= th.High {
		t.Fatalf("low threshold %v must be below high %v", th.Low, th.High)
	}

	labels := Classify(vol, th)
	if len(labels) != len(vol) {
		t.Fatalf("length mismatch")
	}
	for i, v := range vol {
		if math.IsNaN(v) && labels[i] != None {
			t.Errorf("undefined bar %d must be unlabeled, got %v", i, labels[i])
		}
		if !math.IsNaN(v) && labels[i] == None {
			t.Errorf("defined bar %d must be labeled", i)
		}
	}

	d := Distribute(labels)
	defined := 0
	for _, v := range vol {
		if !math.IsNaN(v) {
			defined++
		}
	}
	if d.Low+d.Mid+d.High != defined {
		t.Errorf("labels must partition defined bars: %d+%d+%d != %d", d.Low, d.Mid, d.High, defined)
	}
	if d.Defined != defined || d.Total != len(vol) {
		t.Errorf("distribution bookkeeping wrong: %+v", d)
	}
	if d.Low == 0 || d.High == 0 {
		t.Errorf("expected non-empty tails with Q25/Q75 cutoffs: %+v", d)
	}
}

func TestClassify_BoundaryIsMid(t *testing.T) {
	th := Thresholds{Low: 1, High: 3}
	labels := Classify([]float64{0.5, 1, 2, 3, 3.5}, th)
	want := []Label{Low, Mid, Mid, Mid, High}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d]: want %v, got %v", i, want[i], labels[i])
		}
	}
}

func TestComputeThresholds_AllUndefined(t *testing.T) {
	nan := math.NaN()
	if _, err := ComputeThresholds([]float64{nan, nan}, 0.25, 0.75); err == nil {
		t.Error("expected error for all-NaN series")
	}
}

func TestAvgDuration_FewerThanTwoCrossings(t *testing.T) {
	times := hourlyTimes(6)

	// No crossing at all.
	if d := AvgDuration([]bool{false, false, false, false, false, false}, times); d != 0 {
		t.Errorf("no crossings: want exactly 0, got %v", d)
	}
	// Exactly one crossing.
	if d := AvgDuration([]bool{false, false, false, true, true, true}, times); d != 0 {
		t.Errorf("one crossing: want exactly 0, got %v", d)
	}
	// Constant in-regime series.
	if d := AvgDuration([]bool{true, true, true, true, true, true}, times); d != 0 {
		t.Errorf("constant regime: want exactly 0, got %v", d)
	}
}

func TestAvgDuration_MeanHoursBetweenCrossings(t *testing.T) {
	times := hourlyTimes(10)
	// Crossings at indices 2, 5, 9: gaps of 3h and 4h, mean 3.5h.
	in := []bool{false, false, true, true, true, false, false, false, false, true}
	got := AvgDuration(in, times)
	if math.Abs(got-3.5) > 1e-12 {
		t.Errorf("want 3.5 hours, got %v", got)
	}
}

func TestMeanWhere(t *testing.T) {
	vol := []float64{math.NaN(), 1, 2, 3}
	labels := []Label{None, Low, Low, High}
	if m := MeanWhere(vol, labels, Low); m != 1.5 {
		t.Errorf("want 1.5, got %v", m)
	}
	if m := MeanWhere(vol, labels, Mid); !math.IsNaN(m) {
		t.Errorf("empty regime mean should be NaN, got %v", m)
	}
}

func TestIndicator(t *testing.T) {
	labels := []Label{None, Low, High, Mid, High}
	in := Indicator(labels, High)
	want := []bool{false, false, true, false, true}
	for i := range want {
		if in[i] != want[i] {
			t.Errorf("in[%d]: want %v, got %v", i, want[i], in[i])
		}
	}
}
