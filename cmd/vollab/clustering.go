package main

import "github.com/spf13/cobra"

func clusteringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clustering",
		Short: "Test for volatility clustering (ARCH-LM, ACF, regimes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rec := newRecorder(cfg)
			defer rec.Close()
			return runClustering(cfg, rec)
		},
	}
}
