package brain

import (
	"errors"

	"github.com/domino14/crapette/config"
)

var ErrInvalidConfig = errors.New("invalid brain configuration")

// Config toggles the search behavior.
type Config struct {
	// Shortcut stops the search as soon as the first move of the best path
	// is shared by every node left on the frontier.
	Shortcut bool
	// FilterOrigins skips tableau piles none of whose cards can go
	// anywhere useful.
	FilterOrigins bool
	// FilterOriginsAggressive only keeps a tableau pile whose bottom card
	// fits on another tableau pile, or one of whose cards fits on a
	// foundation or an opponent pile.
	FilterOriginsAggressive bool
	// Mono runs the search on the caller's goroutine. Otherwise callers
	// hand it to a worker.BrainWorker.
	Mono bool
	// PrintProgress writes a progress line per visited node.
	PrintProgress bool
	// Reproducible orders tableau destinations canonically rather than in
	// board order.
	Reproducible bool
}

func DefaultConfig() Config {
	return Config{
		Shortcut:                true,
		FilterOrigins:           true,
		FilterOriginsAggressive: true,
		Mono:                    true,
		Reproducible:            true,
	}
}

func (c Config) Validate() error {
	if c.PrintProgress && !c.Mono {
		return errors.Join(ErrInvalidConfig, errors.New("progress can only be printed by a search on the caller's goroutine"))
	}
	return nil
}

func (c Config) filtering() bool {
	return c.FilterOrigins || c.FilterOriginsAggressive
}

// NewConfig reads the brain-* keys.
func NewConfig(cfg *config.Config) (Config, error) {
	c := Config{
		Shortcut:                cfg.GetBool(config.ConfigBrainShortcut),
		FilterOrigins:           cfg.GetBool(config.ConfigBrainFilterOrigins),
		FilterOriginsAggressive: cfg.GetBool(config.ConfigBrainFilterOriginsAggressive),
		Mono:                    cfg.GetBool(config.ConfigBrainMono),
		PrintProgress:           cfg.GetBool(config.ConfigBrainPrintProgress),
		Reproducible:            cfg.GetBool(config.ConfigBrainReproducible),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
