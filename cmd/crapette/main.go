package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domino14/crapette/config"
)

var GitVersion string

var cfg = config.DefaultConfig()

var (
	cpuProfile string
	stopProf   func()
)

var rootCmd = &cobra.Command{
	Use:           "crapette",
	Short:         "A crapette engine: deal, solve and self-play",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       GitVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.BindFlags(cmd.Flags()); err != nil {
			return err
		}
		if err := setupLogging(); err != nil {
			return err
		}
		return startProfile()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if stopProf != nil {
			stopProf()
		}
	},
}

func init() {
	config.AddFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpu-profile", "", "write a CPU profile to this file")
	rootCmd.AddCommand(solveCmd, autoplayCmd, analyzeCmd, shellCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func setupLogging() error {
	level, err := zerolog.ParseLevel(cfg.GetString(config.ConfigLogLevel))
	if err != nil {
		return err
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: !isatty.IsTerminal(os.Stderr.Fd())}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	return nil
}

func startProfile() error {
	if cpuProfile == "" {
		return nil
	}
	f, err := os.Create(cpuProfile)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}
	log.Info().Str("file", cpuProfile).Msg("cpu-profiling")
	stopProf = func() {
		pprof.StopCPUProfile()
		f.Close()
	}
	return nil
}

// useColor follows the color setting, where auto means color on a
// terminal.
func useColor(f *os.File) bool {
	switch cfg.GetString(config.ConfigColor) {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
