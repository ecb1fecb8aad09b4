package main

import "github.com/spf13/cobra"

func atrRatioCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "atr-ratio",
		Short: "Backtest ratio-based sizing against a fixed baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if year != 0 {
				cfg.Data.Year = year
			}
			rec := newRecorder(cfg)
			defer rec.Close()
			return runATRRatio(cfg, rec)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "calendar year to analyse (overrides config)")
	return cmd
}
