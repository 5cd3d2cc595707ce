// Package brain finds the moves a player makes in one crapette turn. It
// runs a best-first search over the positions reachable this turn and
// picks the path to the best of them.
package brain

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
)

// Force plays a turn: a search, with a fallback move when the search finds
// nothing to do.
type Force struct {
	cfg            Config
	logStream      io.Writer
	progressStream io.Writer

	current atomic.Pointer[Dijkstra]
}

func NewForce(cfg Config) *Force {
	return &Force{cfg: cfg}
}

func (f *Force) SetLogStream(w io.Writer) {
	f.logStream = w
}

func (f *Force) SetProgressStream(w io.Writer) {
	f.progressStream = w
}

// Nodes is the number of positions the latest search visited so far. It
// may be called while the search runs.
func (f *Force) Nodes() uint64 {
	if d := f.current.Load(); d != nil {
		return d.Nodes()
	}
	return 0
}

// Search returns the moves player should make on b, never an empty list,
// and the number of positions visited. b is not modified.
func (f *Force) Search(b *board.Board, player card.Player) ([]move.Move, uint64) {
	moves, nodes, _ := f.SearchContext(context.Background(), b, player)
	return moves, nodes
}

// SearchContext is Search, returning ctx's error and no moves if ctx is
// done before the search ends.
func (f *Force) SearchContext(ctx context.Context, b *board.Board, player card.Player) ([]move.Move, uint64, error) {
	start := time.Now()
	d := NewDijkstra(b, player, f.cfg)
	d.SetLogStream(f.logStream)
	d.SetProgressStream(f.progressStream)
	f.current.Store(d)
	moves, nodes, err := d.SearchContext(ctx)
	if err != nil {
		searchTotal.WithLabelValues(outcomeCancelled).Inc()
		return nil, nodes, err
	}

	outcome := outcomePath
	if len(moves) == 0 {
		var m move.Move
		m, outcome = fallback(b, player)
		moves = []move.Move{m}
	}

	elapsed := time.Since(start)
	searchTotal.WithLabelValues(outcome).Inc()
	searchNodes.Observe(float64(nodes))
	searchMoves.Observe(float64(len(moves)))
	searchDuration.Observe(elapsed.Seconds())
	log.Debug().
		Int("player", int(player)).
		Uint64("nodes", nodes).
		Int("moves", len(moves)).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("brain-search-done")
	return moves, nodes, nil
}

// Search is a one-off Force search.
func Search(b *board.Board, player card.Player, cfg Config) ([]move.Move, uint64) {
	return NewForce(cfg).Search(b, player)
}

// Fallback is the move to make when nothing better exists: flip the
// crape, else recycle the waste into an empty stock, else flip the stock,
// else throw the stock top on the waste, which ends the turn.
func Fallback(b *board.Board, player card.Player) move.Move {
	m, _ := fallback(b, player)
	return m
}

func fallback(b *board.Board, player card.Player) (move.Move, string) {
	crape, stock := b.Crape(player), b.Stock(player)
	switch {
	case !crape.IsEmpty() && !crape.TopFaceUp():
		return move.NewFlip(crape.MustTop(), crape.ID()), outcomeFlipCrape
	case stock.IsEmpty():
		return move.NewRecycleWaste(player), outcomeRecycleWaste
	case !stock.TopFaceUp():
		return move.NewFlip(stock.MustTop(), stock.ID()), outcomeFlipStock
	}
	return move.NewRelocate(stock.MustTop(), stock.ID(), pile.WasteID(player)), outcomeThrowStock
}
