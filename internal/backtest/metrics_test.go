package backtest

import (
	"math"
	"testing"

	"VolLab/internal/model"
)

func trade(r, pnl float64) model.Trade {
	out := model.Trade{RMultiple: r, PnL: pnl, Outcome: model.OutcomeLoss}
	if r > 0 {
		out.Outcome = model.OutcomeWin
	}
	return out
}

func TestCompute_MixedTrades(t *testing.T) {
	trades := []model.Trade{
		trade(2.0, 200),
		trade(-1.0, -100),
		trade(1.0, 100),
		trade(-1.0, -100),
	}
	s := Compute(trades)

	if s.Trades != 4 || s.Wins != 2 || s.Losses != 2 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.WinRate != 50 {
		t.Errorf("win rate: want 50, got %v", s.WinRate)
	}
	if s.AvgWin != 150 {
		t.Errorf("avg win: want 150, got %v", s.AvgWin)
	}
	if s.AvgLoss != -100 {
		t.Errorf("avg loss: want -100, got %v", s.AvgLoss)
	}
	if s.TotalPnL != 100 {
		t.Errorf("total PnL: want 100, got %v", s.TotalPnL)
	}
	if math.Abs(s.AvgR-0.25) > 1e-12 {
		t.Errorf("avg R: want 0.25, got %v", s.AvgR)
	}
	if !s.ProfitFactorOK || math.Abs(s.ProfitFactor-1.5) > 1e-12 {
		t.Errorf("profit factor: want 1.5 (ok), got %v ok=%v", s.ProfitFactor, s.ProfitFactorOK)
	}
}

func TestCompute_NoLossesLeavesProfitFactorUndefined(t *testing.T) {
	s := Compute([]model.Trade{trade(1.0, 100), trade(0.5, 50)})
	if s.ProfitFactorOK {
		t.Error("profit factor must be undefined with no losing trades")
	}
	if s.ProfitFactor != 0 {
		t.Errorf("undefined profit factor should stay at zero value, got %v", s.ProfitFactor)
	}
	if s.Losses != 0 || s.WinRate != 100 {
		t.Errorf("stats wrong: %+v", s)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	if s.Trades != 0 || s.TotalPnL != 0 || s.ProfitFactorOK {
		t.Errorf("empty sequence should yield zero stats: %+v", s)
	}
}

func TestEquity_Cumulative(t *testing.T) {
	trades := []model.Trade{trade(1, 100), trade(-1, -50), trade(1, 25)}
	eq := Equity(trades)
	want := []float64{100, 50, 75}
	if len(eq) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(eq), len(want))
	}
	for i := range want {
		if eq[i] != want[i] {
			t.Errorf("eq[%d]: want %v, got %v", i, want[i], eq[i])
		}
	}
}

func TestImprovement(t *testing.T) {
	cand := Stats{TotalPnL: 150}
	base := Stats{TotalPnL: 100}
	if pct, ok := Improvement(cand, base); !ok || pct != 50 {
		t.Errorf("want 50%% ok, got %v ok=%v", pct, ok)
	}

	// Negative baseline: improvement measured against its magnitude.
	base = Stats{TotalPnL: -100}
	if pct, ok := Improvement(cand, base); !ok || pct != 250 {
		t.Errorf("want 250%% ok, got %v ok=%v", pct, ok)
	}

	// Zero baseline is undefined, never a division by zero.
	if _, ok := Improvement(cand, Stats{}); ok {
		t.Error("zero-baseline improvement must be undefined")
	}
}
