package game

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	a := NewGame("game-seed")
	b := NewGame("game-seed")
	is.Equal(a.Board().ToLayout(), b.Board().ToLayout())
	is.Equal(a.PlayerOnTurn(), b.PlayerOnTurn())
	is.Equal(a.PlayerOnTurn(), a.Board().FirstPlayer())
	is.True(a.Uid() != b.Uid())
	is.Equal(a.Seed(), "game-seed")
	is.True(a.Playing())
	is.Equal(a.Turn(), 0)

	c := NewGame("")
	is.True(c.Seed() != "")
}

func TestOwnWasteEndsTurn(t *testing.T) {
	is := is.New(t)
	g := NewFromBoard(board.MustFromLayout(`
		S0: 2cv Kh
		T0: 5d
	`), card.Player0)
	var logged bytes.Buffer
	g.SetLogStream(&logged)

	is.NoErr(g.PlayMove(move.NewRelocate(card.MustFromString("Kh"), pile.StockID(0), pile.WasteID(0))))
	is.Equal(g.PlayerOnTurn(), card.Player1)
	is.Equal(g.Turn(), 1)
	is.Equal(g.Step(), 1)
	is.Equal(len(g.History()), 1)
	is.Equal(g.History()[0].Player, card.Player0)
	is.True(strings.Contains(logged.String(), "*** 1 ***\nPlayer 0: Move K♥ from Stock0 to Waste0"))
}

func TestOpponentWasteKeepsTurn(t *testing.T) {
	is := is.New(t)
	g := NewFromBoard(board.MustFromLayout(`
		X1: 6h1
		T0: 5h
		S0: 2cv
	`), card.Player0)
	is.NoErr(g.PlayMove(move.NewRelocate(card.MustFromString("5h"), pile.TableauID(0), pile.WasteID(1))))
	is.Equal(g.PlayerOnTurn(), card.Player0)
	is.Equal(g.Turn(), 0)
	is.Equal(g.HistoryString(), "1 0 5h0 T0 X1\n")
}

func TestIllegalMove(t *testing.T) {
	is := is.New(t)
	g := NewFromBoard(board.MustFromLayout("T0: 5d\nT1: 6d"), card.Player0)
	err := g.PlayMove(move.NewRelocate(card.MustFromString("5d"), pile.TableauID(0), pile.TableauID(1)))
	is.True(errors.Is(err, board.ErrIllegalMove))
	is.Equal(g.Step(), 0)
	is.Equal(len(g.History()), 0)
}

func TestWin(t *testing.T) {
	is := is.New(t)
	g := NewFromBoard(board.MustFromLayout(`
		C0: Ad
		S1: 4c1v
	`), card.Player0)
	_, over := g.Winner()
	is.True(!over)

	is.NoErr(g.PlayMove(move.NewRelocate(card.MustFromString("Ad"), pile.CrapeID(0), pile.FoundationID(0))))
	winner, over := g.Winner()
	is.True(over)
	is.Equal(winner, card.Player0)
	is.True(!g.Playing())
	is.Equal(g.Turn(), 0)

	err := g.PlayMove(move.NewFlip(card.MustFromString("4c1v"), pile.StockID(1)))
	is.True(errors.Is(err, ErrGameOver))
	is.True(strings.Contains(g.ToDisplayText(false), "Player 0 won."))
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	g := NewGame("display")
	text := g.ToDisplayText(false)
	lines := strings.Split(text, "\n")
	is.Equal(len(lines), 8)
	is.True(strings.HasSuffix(lines[1], "Turn 0, step 0"))
	is.True(strings.Contains(lines[2], "to play"))
	is.True(strings.HasSuffix(lines[5], "Seed: display"))
}

func TestSplitSubN(t *testing.T) {
	is := is.New(t)
	is.Equal(splitSubN("abcdefg", 3), []string{"abc", "def", "g"})
	is.Equal(splitSubN("K♥Q♠", 2), []string{"K♥", "Q♠"})
	is.Equal(len(splitSubN("", 3)), 0)
}
