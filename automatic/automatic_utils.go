package automatic

// Self-play: many brain-vs-brain games at once, for statistics.

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/crapette/config"
)

// bytesPerGame is a rough upper bound on the memory one search holds
// for a big mid-game position.
const bytesPerGame = 256 << 20

var (
	gamesPlayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crapette_autoplay_games_total",
		Help: "Self-play games finished or abandoned",
	})
	gamesInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crapette_autoplay_games_in_progress",
		Help: "Self-play games being played",
	})

	isPlaying atomic.Bool
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Threads is the number of games to play at once: the configured number,
// or else one per CPU, but never more than the configured share of the
// system memory allows.
func Threads(cfg *config.Config) int {
	threads := cfg.GetInt(config.ConfigAutoplayThreads)
	if threads > 0 {
		return threads
	}
	threads = runtime.NumCPU()
	if total := memory.TotalMemory(); total > 0 {
		budget := cfg.GetFloat64(config.ConfigAutoplayMemoryFraction) * float64(total)
		threads = min(threads, int(budget/bytesPerGame))
	}
	return max(threads, 1)
}

// StartCompVCompGames plays one game per seed, threads at a time, and
// writes one CSV line per game to outputFilename if it is not empty. It
// stops early, returning the results so far, if ctx is cancelled.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, seeds []string,
	threads int, outputFilename string) ([]GameResult, error) {

	if !isPlaying.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer isPlaying.Store(false)

	var logChan chan string
	var logDone sync.WaitGroup
	if outputFilename != "" {
		logfile, err := os.Create(outputFilename)
		if err != nil {
			return nil, err
		}
		logChan = make(chan string, 100)
		logDone.Add(1)
		go func() {
			defer logDone.Done()
			defer logfile.Close()
			logfile.WriteString(CSVHeader)
			for msg := range logChan {
				logfile.WriteString(msg)
			}
		}()
	}

	log.Info().Int("games", len(seeds)).Int("threads", threads).Msg("starting-autoplay")

	results := make([]GameResult, len(seeds))
	played := make([]bool, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

queue:
	for i, seed := range seeds {
		select {
		case <-gctx.Done():
			log.Info().Msg("got stop signal, exiting soon")
			break queue
		default:
		}
		g.Go(func() error {
			runner, err := NewGameRunner(logChan, cfg)
			if err != nil {
				return err
			}
			gamesInProgress.Inc()
			defer gamesInProgress.Dec()
			res, err := runner.PlayGame(gctx, seed)
			if err != nil {
				return err
			}
			results[i] = res
			played[i] = true
			gamesPlayed.Inc()
			if n := i + 1; n%100 == 0 {
				log.Info().Int("game", n).Msg("autoplay-progress")
			}
			return nil
		})
	}

	err := g.Wait()
	if logChan != nil {
		close(logChan)
		logDone.Wait()
	}

	var done []GameResult
	for i, ok := range played {
		if ok {
			done = append(done, results[i])
		}
	}
	log.Info().Int("played", len(done)).Msg("autoplay-finished")
	if ctx.Err() != nil {
		return done, ctx.Err()
	}
	return done, err
}
