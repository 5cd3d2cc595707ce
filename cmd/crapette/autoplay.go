package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domino14/crapette/automatic"
	"github.com/domino14/crapette/config"
)

var (
	summaryFile   string
	saveSeedsFile string

	autoplayCmd = &cobra.Command{
		Use:   "autoplay",
		Short: "Play games between two copies of the brain",
		Long: `Autoplay plays --autoplay-games games, or one per seed in
--autoplay-seed-file, writes a CSV line per game and prints a summary.
Interrupting it reports on the games finished so far.`,
		Args: cobra.NoArgs,
		RunE: runAutoplay,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze <autoplay.csv>",
		Short: "Summarize the CSV written by autoplay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := automatic.AnalyzeLogFile(args[0])
			if err != nil {
				return err
			}
			return report(cmd, s)
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{autoplayCmd, analyzeCmd} {
		c.Flags().StringVar(&summaryFile, "summary", "", "also write the summary as YAML to this file")
	}
	autoplayCmd.Flags().StringVar(&saveSeedsFile, "save-seeds", "", "write the seeds played to this file")
}

func report(cmd *cobra.Command, s *automatic.Summary) error {
	if err := s.Report(cmd.OutOrStdout()); err != nil {
		return err
	}
	if summaryFile == "" {
		return nil
	}
	f, err := os.Create(summaryFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.WriteYAML(f)
}

func runAutoplay(cmd *cobra.Command, args []string) error {
	var seeds []string
	if path := cfg.GetString(config.ConfigAutoplaySeedFile); path != "" {
		var err error
		if seeds, err = automatic.LoadSeeds(path); err != nil {
			return err
		}
	} else {
		seeds = automatic.GenerateSeeds(cfg.GetInt(config.ConfigAutoplayGames))
	}
	if saveSeedsFile != "" {
		if err := automatic.SaveSeeds(seeds, saveSeedsFile); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	results, err := automatic.StartCompVCompGames(ctx, cfg, seeds, automatic.Threads(cfg),
		cfg.GetString(config.ConfigAutoplayOutput))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s := automatic.Summarize(results)
	if err := s.AddMetrics(prometheus.DefaultGatherer); err != nil {
		log.Warn().Err(err).Msg("gathering-metrics")
	}
	return report(cmd, s)
}
