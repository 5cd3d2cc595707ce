// Package config holds the settings shared by the crapette tools. Every
// key can come from a flag, from a CRAPETTE_* environment variable, or
// from a YAML config file, in that order of precedence.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigConfigFile                   = "config-file"
	ConfigLogLevel                     = "log-level"
	ConfigBrainShortcut                = "brain-shortcut"
	ConfigBrainFilterOrigins           = "brain-filter-origins"
	ConfigBrainFilterOriginsAggressive = "brain-filter-origins-aggressive"
	ConfigBrainMono                    = "brain-mono"
	ConfigBrainReproducible            = "brain-reproducible"
	ConfigBrainPrintProgress           = "brain-print-progress"
	ConfigTraceDir                     = "trace-dir"
	ConfigAutoplayGames                = "autoplay-games"
	ConfigAutoplayThreads              = "autoplay-threads"
	ConfigAutoplayMaxTurns             = "autoplay-max-turns"
	ConfigAutoplayMemoryFraction       = "autoplay-memory-fraction"
	ConfigAutoplaySeedFile             = "autoplay-seed-file"
	ConfigAutoplayOutput               = "autoplay-output"
	ConfigSeed                         = "seed"
	ConfigColor                        = "color"
)

type Config struct {
	*viper.Viper
}

// DefaultConfig has every default set and nothing loaded.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.SetEnvPrefix("crapette")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetDefault(ConfigLogLevel, "info")
	c.SetDefault(ConfigBrainShortcut, true)
	c.SetDefault(ConfigBrainFilterOrigins, true)
	c.SetDefault(ConfigBrainFilterOriginsAggressive, true)
	c.SetDefault(ConfigBrainMono, true)
	c.SetDefault(ConfigBrainReproducible, true)
	c.SetDefault(ConfigBrainPrintProgress, false)
	c.SetDefault(ConfigTraceDir, "")
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayThreads, 0)
	c.SetDefault(ConfigAutoplayMaxTurns, 500)
	c.SetDefault(ConfigAutoplayMemoryFraction, 0.25)
	c.SetDefault(ConfigAutoplaySeedFile, "")
	c.SetDefault(ConfigAutoplayOutput, "autoplay.csv")
	c.SetDefault(ConfigSeed, "")
	c.SetDefault(ConfigColor, "auto")
	return c
}

// AddFlags declares a flag for every key on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(ConfigConfigFile, "", "YAML file to read settings from")
	fs.String(ConfigLogLevel, "info", "debug, info, warn, error or disabled")
	fs.Bool(ConfigBrainShortcut, true, "stop searching once the first move is forced")
	fs.Bool(ConfigBrainFilterOrigins, true, "skip tableau piles whose cards cannot go anywhere")
	fs.Bool(ConfigBrainFilterOriginsAggressive, true, "filter tableau piles harder")
	fs.Bool(ConfigBrainMono, true, "search on the calling goroutine rather than in a worker")
	fs.Bool(ConfigBrainReproducible, true, "order search candidates deterministically")
	fs.Bool(ConfigBrainPrintProgress, false, "print a progress line per searched position")
	fs.String(ConfigTraceDir, "", "directory for per-turn search traces")
	fs.Int(ConfigAutoplayGames, 100, "number of games to play")
	fs.Int(ConfigAutoplayThreads, 0, "parallel games; 0 picks from CPUs and memory")
	fs.Int(ConfigAutoplayMaxTurns, 500, "abandon a game after this many turns")
	fs.Float64(ConfigAutoplayMemoryFraction, 0.25, "share of system memory autoplay may plan for")
	fs.String(ConfigAutoplaySeedFile, "", "file of deal seeds, one per line, to replay")
	fs.String(ConfigAutoplayOutput, "autoplay.csv", "CSV file with one line per autoplay game")
	fs.String(ConfigSeed, "", "seed for the deal; random if empty")
	fs.String(ConfigColor, "auto", "color output: auto, always or never")
}

// BindFlags makes parsed flags override everything else, then reads the
// config file if one was named.
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return nil
}

// Load parses command-line style args.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("crapette", pflag.ContinueOnError)
	AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.BindFlags(fs)
}

// ToDisplayText lists the settings, one per line.
func (c *Config) ToDisplayText() string {
	settings := c.AllSettings()
	keys := lo.Keys(settings)
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%-32s %v\n", k, settings[k])
	}
	return sb.String()
}
