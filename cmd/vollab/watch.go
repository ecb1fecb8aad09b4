package main

import (
	"fmt"

	"VolLab/internal/config"
	"VolLab/internal/recorder"
	"VolLab/internal/scheduler"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "watch [clustering|atr-ratio]",
		Short: "Re-run a pipeline on a cron schedule as new data is appended",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var job func(*config.Config, recorder.Recorder) error
			switch args[0] {
			case "clustering":
				job = runClustering
			case "atr-ratio":
				job = runATRRatio
			default:
				return fmt.Errorf("unknown pipeline %q", args[0])
			}

			rec := newRecorder(cfg)
			defer rec.Close()

			sched := scheduler.New(cmd.Context())
			if err := sched.Register(cfg.Schedule.WatchCron, args[0], func() error {
				return job(cfg, rec)
			}); err != nil {
				return err
			}

			if runOnStart {
				if err := job(cfg, rec); err != nil {
					log.Error().Err(err).Msg("initial run failed")
				}
			}

			sched.Start()
			defer sched.Stop()

			log.Info().Str("cron", cfg.Schedule.WatchCron).Str("pipeline", args[0]).
				Msg("watching; press Ctrl+C to stop")
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "execute the pipeline once immediately")
	return cmd
}
