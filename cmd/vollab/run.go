package main

import (
	"fmt"

	"VolLab/internal/backtest"
	"VolLab/internal/config"
	"VolLab/internal/dataset"
	"VolLab/internal/hypothesis"
	"VolLab/internal/plotting"
	"VolLab/internal/recorder"

	"github.com/rs/zerolog/log"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Output.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return rec
}

// runClustering executes the clustering pipeline once: load, analyse, plot,
// report, record. A missing input file is fatal to the run.
func runClustering(cfg *config.Config, rec recorder.Recorder) error {
	bars, err := dataset.Load(cfg.Data.InputPath)
	if err != nil {
		return err
	}
	log.Info().Int("bars", len(bars)).Str("path", cfg.Data.InputPath).Msg("data loaded")

	res, err := hypothesis.RunClustering(bars, cfg)
	if err != nil {
		return fmt.Errorf("clustering analysis: %w", err)
	}
	for _, lr := range res.ARCH {
		if lr.Failed() {
			log.Warn().Int("lag", lr.Lag).Err(lr.Err).Msg("ARCH-LM lag skipped")
		}
	}

	fmt.Print(hypothesis.FormatClusteringReport(res))

	paths, err := plotting.SaveClusteringPlots(res, cfg.Output.Dir)
	for _, p := range paths {
		log.Info().Str("path", p).Msg("plot saved")
	}
	if err != nil {
		return fmt.Errorf("render plots: %w", err)
	}

	if err := rec.RecordClustering(toClusteringRecord(cfg, res)); err != nil {
		log.Error().Err(err).Msg("record clustering run")
	}
	return nil
}

// runATRRatio executes the backtest pipeline once.
func runATRRatio(cfg *config.Config, rec recorder.Recorder) error {
	bars, err := dataset.LoadYear(cfg.Data.InputPath, cfg.Data.Year)
	if err != nil {
		return err
	}
	log.Info().Int("bars", len(bars)).Int("year", cfg.Data.Year).
		Str("path", cfg.Data.InputPath).Msg("data loaded")

	res, err := hypothesis.RunATRRatio(bars, cfg)
	if err != nil {
		return fmt.Errorf("atr-ratio backtest: %w", err)
	}

	fmt.Print(hypothesis.FormatBacktestReport(res))

	paths, err := plotting.SaveBacktestPlots(res, cfg.Output.Dir)
	for _, p := range paths {
		log.Info().Str("path", p).Msg("plot saved")
	}
	if err != nil {
		return fmt.Errorf("render plots: %w", err)
	}

	if err := rec.RecordBacktest(toBacktestRecord(cfg, res, string(backtest.ModeRatio), res.RatioStats), res.RatioTrades); err != nil {
		log.Error().Err(err).Msg("record ratio backtest run")
	}
	if err := rec.RecordBacktest(toBacktestRecord(cfg, res, string(backtest.ModeFixed), res.FixedStats), res.FixedTrades); err != nil {
		log.Error().Err(err).Msg("record fixed backtest run")
	}
	return nil
}

func toClusteringRecord(cfg *config.Config, res *hypothesis.ClusteringResult) *recorder.ClusteringRecord {
	rec := &recorder.ClusteringRecord{
		InputPath:    cfg.Data.InputPath,
		Bars:         res.Bars,
		VolRatio:     res.VolRatio,
		HighDuration: res.HighDuration,
		LowDuration:  res.LowDuration,
		Score:        res.Score,
		Verdict:      string(res.Verdict),
	}
	for _, lr := range res.ARCH {
		rec.Lags = append(rec.Lags, recorder.LagStat{
			Lag: lr.Lag, LM: lr.LM, LMPValue: lr.LMPValue,
			F: lr.F, FPValue: lr.FPValue, Failed: lr.Failed(),
		})
	}
	return rec
}

func toBacktestRecord(cfg *config.Config, res *hypothesis.BacktestResult, mode string, s backtest.Stats) *recorder.BacktestRecord {
	pf := -1.0
	if s.ProfitFactorOK {
		pf = s.ProfitFactor
	}
	return &recorder.BacktestRecord{
		InputPath:    cfg.Data.InputPath,
		Year:         res.Year,
		Bars:         res.Bars,
		Mode:         mode,
		Trades:       s.Trades,
		WinRate:      s.WinRate,
		AvgWin:       s.AvgWin,
		AvgLoss:      s.AvgLoss,
		AvgR:         s.AvgR,
		TotalPnL:     s.TotalPnL,
		ProfitFactor: pf,
	}
}
