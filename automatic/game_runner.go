// Package automatic plays crapette games between two copies of the brain
// and collects statistics about them.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crapette/brain"
	"github.com/domino14/crapette/config"
	"github.com/domino14/crapette/game"
	"github.com/domino14/crapette/worker"
)

// NoWinner marks a game abandoned at the turn limit or stuck in a turn.
const NoWinner = -1

// GameResult describes one finished or abandoned game.
type GameResult struct {
	UID      string
	Seed     string
	First    int
	Winner   int
	Turns    int
	Steps    int
	Nodes    uint64
	Duration time.Duration
}

// CSVHeader names the fields of GameResult.CSV.
const CSVHeader = "gameID,seed,first,winner,turns,steps,nodes,seconds\n"

func (r GameResult) CSV() string {
	return fmt.Sprintf("%s,%s,%d,%d,%d,%d,%d,%.3f\n",
		r.UID, r.Seed, r.First, r.Winner, r.Turns, r.Steps, r.Nodes, r.Duration.Seconds())
}

// GameRunner plays games one after the other.
type GameRunner struct {
	brainCfg brain.Config
	maxTurns int
	traceDir string
	logchan  chan string
}

// NewGameRunner reads the brain and autoplay settings from cfg. Each
// finished game is sent to logchan as a CSV line, if logchan is not nil.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	brainCfg, err := brain.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &GameRunner{
		brainCfg: brainCfg,
		maxTurns: cfg.GetInt(config.ConfigAutoplayMaxTurns),
		traceDir: cfg.GetString(config.ConfigTraceDir),
		logchan:  logchan,
	}, nil
}

// PlayGame deals from seed and plays until someone wins or the turn limit
// is reached.
func (r *GameRunner) PlayGame(ctx context.Context, seed string) (GameResult, error) {
	start := time.Now()
	s, closeSearcher, err := worker.NewSearcher(r.brainCfg)
	if err != nil {
		return GameResult{}, err
	}
	defer closeSearcher()

	g := game.NewGame(seed)
	g.SetTraceDir(r.traceDir)
	res := GameResult{UID: g.Uid(), Seed: g.Seed(), First: int(g.PlayerOnTurn()), Winner: NoWinner}

	for g.Playing() && g.Turn() < r.maxTurns {
		err := g.PlayTurn(ctx, s)
		if errors.Is(err, game.ErrStuck) {
			log.Warn().Err(err).Str("uid", g.Uid()).Str("seed", g.Seed()).Msg("abandoning-game")
			break
		}
		if err != nil {
			return res, fmt.Errorf("game %s (seed %s): %w", g.Uid(), g.Seed(), err)
		}
	}

	if winner, over := g.Winner(); over {
		res.Winner = int(winner)
	}
	res.Turns = g.Turn()
	res.Steps = g.Step()
	res.Nodes = g.Nodes()
	res.Duration = time.Since(start)

	log.Debug().
		Str("uid", res.UID).
		Int("winner", res.Winner).
		Int("turns", res.Turns).
		Uint64("nodes", res.Nodes).
		Msg("game-finished")
	if r.logchan != nil {
		r.logchan <- res.CSV()
	}
	return res, nil
}
