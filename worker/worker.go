// Package worker runs brain searches in the background. Starting a search
// cancels the one before it, so a caller whose position changed never
// waits on, or gets, moves for a stale board.
package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/brain"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/game"
	"github.com/domino14/crapette/move"
)

const DefaultHeartbeatInterval = time.Second

var (
	ErrSuperseded = errors.New("search superseded by a newer one")
	ErrNoSearch   = errors.New("no search running")
)

var supersededTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "crapette_worker_searches_superseded_total",
	Help: "Background searches cancelled before their result was read",
})

// Result is what a background search found.
type Result struct {
	Moves []move.Move
	Nodes uint64
}

type search struct {
	gen    uint64
	player card.Player
	force  *brain.Force
	cancel context.CancelFunc
	done   chan searchResult
}

type searchResult struct {
	Result
	err error
}

// BrainWorker runs at most one live search at a time.
type BrainWorker struct {
	cfg       brain.Config
	heartbeat time.Duration

	mu        sync.Mutex
	gen       uint64
	current   *search
	logStream io.Writer
}

func NewBrainWorker(cfg brain.Config) (*BrainWorker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BrainWorker{cfg: cfg, heartbeat: DefaultHeartbeatInterval}, nil
}

// SetHeartbeat sets how often Wait logs the progress of the search.
func (w *BrainWorker) SetHeartbeat(d time.Duration) {
	w.heartbeat = d
}

// SetLogStream applies to searches started afterwards.
func (w *BrainWorker) SetLogStream(wr io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logStream = wr
}

// Start cancels any running search and starts one for player on a copy of
// b. It returns the search generation.
func (w *BrainWorker) Start(ctx context.Context, b *board.Board, player card.Player) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.killLocked()

	w.gen++
	ctx, cancel := context.WithCancel(ctx)
	f := brain.NewForce(w.cfg)
	f.SetLogStream(w.logStream)
	s := &search{
		gen:    w.gen,
		player: player,
		force:  f,
		cancel: cancel,
		done:   make(chan searchResult, 1),
	}
	w.current = s

	b = b.Copy()
	go func() {
		moves, nodes, err := f.SearchContext(ctx, b, player)
		s.done <- searchResult{Result{Moves: moves, Nodes: nodes}, err}
	}()
	log.Debug().Uint64("gen", s.gen).Int("player", int(player)).Msg("search-started")
	return s.gen
}

// Kill cancels the running search, if any. Its result is never delivered.
func (w *BrainWorker) Kill() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.killLocked()
}

func (w *BrainWorker) killLocked() {
	if w.current == nil {
		return
	}
	w.current.cancel()
	supersededTotal.Inc()
	log.Debug().Uint64("gen", w.current.gen).Msg("search-killed")
	w.current = nil
}

// Wait blocks until the latest search ends and returns its result.
func (w *BrainWorker) Wait(ctx context.Context) (Result, error) {
	w.mu.Lock()
	s := w.current
	w.mu.Unlock()
	if s == nil {
		return Result{}, ErrNoSearch
	}
	return w.wait(ctx, s)
}

func (w *BrainWorker) wait(ctx context.Context, s *search) (Result, error) {
	ticker := time.NewTicker(w.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case r := <-s.done:
			w.mu.Lock()
			superseded := w.current != s
			if !superseded {
				w.current = nil
			}
			w.mu.Unlock()
			s.cancel()

			if superseded {
				return Result{}, ErrSuperseded
			}
			if r.err != nil {
				return Result{}, r.err
			}
			return r.Result, nil

		case <-ticker.C:
			log.Debug().Uint64("gen", s.gen).Uint64("nodes", s.force.Nodes()).Msg("search-heartbeat")

		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
}

// SearchContext starts a search and waits for it, which makes a
// BrainWorker usable wherever a brain.Force is.
func (w *BrainWorker) SearchContext(ctx context.Context, b *board.Board, player card.Player) ([]move.Move, uint64, error) {
	w.Start(ctx, b, player)
	r, err := w.Wait(ctx)
	return r.Moves, r.Nodes, err
}

// Close stops the worker's search.
func (w *BrainWorker) Close() {
	w.Kill()
}

// NewSearcher is a brain.Force when cfg asks for searches on the caller's
// goroutine, and a BrainWorker otherwise. Call the returned function when
// done with the searcher.
func NewSearcher(cfg brain.Config) (game.Searcher, func(), error) {
	if cfg.Mono {
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
		return brain.NewForce(cfg), func() {}, nil
	}
	w, err := NewBrainWorker(cfg)
	if err != nil {
		return nil, nil, err
	}
	return w, w.Close, nil
}
