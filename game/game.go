// Package game runs a crapette game: whose turn it is, which moves were
// played, and when the game is over. It does not pick moves; a Searcher
// does that, and the game checks every move it is handed.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
)

// MaxSearchesPerTurn bounds the searches PlayTurn runs before giving up on
// a turn that never ends.
const MaxSearchesPerTurn = 1000

var (
	ErrGameOver = errors.New("game is over")
	ErrStuck    = errors.New("turn does not end")
)

// Searcher picks the moves for player on b without modifying b.
// *brain.Force and *worker.BrainWorker are Searchers.
type Searcher interface {
	SearchContext(ctx context.Context, b *board.Board, player card.Player) ([]move.Move, uint64, error)
	SetLogStream(w io.Writer)
}

// Game is the state of one game between two players.
type Game struct {
	uid   string
	seed  string
	board *board.Board

	onturn  card.Player
	playing bool
	winner  card.Player

	// turnnum counts completed turns, step applied moves.
	turnnum int
	step    int
	nodes   uint64
	history []Event

	logStream io.Writer
	traceDir  string
}

// NewGame deals a new game from seed, or from a random seed if it is
// empty. The player with the better crape starts.
func NewGame(seed string) *Game {
	if seed == "" {
		seed = card.GenerateSeed()
	}
	b := board.NewGame(card.NewRNG(seed))
	g := NewFromBoard(b, b.FirstPlayer())
	g.seed = seed
	return g
}

// NewFromBoard starts a game on an existing position with player on
// turn. The game owns b from now on.
func NewFromBoard(b *board.Board, player card.Player) *Game {
	g := &Game{
		uid:     uuid.NewString(),
		board:   b,
		onturn:  player,
		playing: true,
	}
	log.Debug().Str("uid", g.uid).Int("first", int(player)).Msg("new-game")
	return g
}

func (g *Game) Uid() string                   { return g.uid }
func (g *Game) Seed() string                  { return g.seed }
func (g *Game) Board() *board.Board           { return g.board }
func (g *Game) PlayerOnTurn() card.Player     { return g.onturn }
func (g *Game) Playing() bool                 { return g.playing }
func (g *Game) Turn() int                     { return g.turnnum }
func (g *Game) Step() int                     { return g.step }
func (g *Game) Nodes() uint64                 { return g.nodes }
func (g *Game) History() []Event              { return g.history }
func (g *Game) SetLogStream(w io.Writer)      { g.logStream = w }
func (g *Game) SetTraceDir(dir string)        { g.traceDir = dir }
func (g *Game) SetPlayerOnTurn(p card.Player) { g.onturn = p }

// Winner is the player who emptied their stock, waste and crape. ok is
// false while the game goes on.
func (g *Game) Winner() (p card.Player, ok bool) {
	if g.playing {
		return 0, false
	}
	return g.winner, true
}

// PlayMove checks m for the player on turn and applies it. Putting a card
// on one's own waste ends the turn.
func (g *Game) PlayMove(m move.Move) error {
	if !g.playing {
		return ErrGameOver
	}
	player := g.onturn
	if err := g.board.Apply(m, player); err != nil {
		return err
	}
	g.step++
	g.history = append(g.history, Event{Step: g.step, Turn: g.turnnum, Player: player, Move: m})
	g.logStep(player, m)

	if g.board.CheckWin(player) {
		g.playing = false
		g.winner = player
		log.Info().Str("uid", g.uid).Int("winner", int(player)).
			Int("turn", g.turnnum).Int("step", g.step).Msg("game-won")
		return nil
	}
	if m.IsRelocate() && m.Destination() == pile.WasteID(player) {
		g.endTurn()
	}
	return nil
}

// PassTurn hands the turn over without a move.
func (g *Game) PassTurn() {
	log.Debug().Str("uid", g.uid).Int("player", int(g.onturn)).Msg("turn-passed")
	g.endTurn()
}

func (g *Game) endTurn() {
	g.onturn = g.onturn.Other()
	g.turnnum++
}

// PlayTurn asks s for moves until the player on turn is done: the turn
// passes or the game ends. A player left with nothing but an empty stock
// and an empty waste passes.
func (g *Game) PlayTurn(ctx context.Context, s Searcher) error {
	if !g.playing {
		return ErrGameOver
	}
	turn := g.turnnum
	for searches := 0; g.playing && g.turnnum == turn; searches++ {
		if searches == MaxSearchesPerTurn {
			return fmt.Errorf("%w: %d searches in turn %d", ErrStuck, searches, turn)
		}
		moves, err := g.search(ctx, s)
		if err != nil {
			return err
		}
		for _, m := range moves {
			if m.Action() == move.MoveTypeRecycleWaste && g.board.Waste(g.onturn).IsEmpty() {
				g.PassTurn()
				break
			}
			if err := g.PlayMove(m); err != nil {
				return fmt.Errorf("playing %v: %w", m, err)
			}
			if !g.playing || g.turnnum != turn {
				break
			}
		}
	}
	return nil
}

func (g *Game) search(ctx context.Context, s Searcher) ([]move.Move, error) {
	trace, err := g.openTrace()
	if err != nil {
		return nil, err
	}
	if trace != nil {
		s.SetLogStream(trace)
		defer func() {
			s.SetLogStream(nil)
			trace.Close()
		}()
	}
	moves, nodes, err := s.SearchContext(ctx, g.board, g.onturn)
	g.nodes += nodes
	return moves, err
}
