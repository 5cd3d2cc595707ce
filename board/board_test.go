package board

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	b := NewGame(card.NewRNG("deal-test"))
	is.Equal(b.NumCards(), card.TotalCards)
	for _, p := range card.Players {
		is.Equal(b.Crape(p).Len(), pile.CrapeStart)
		is.True(b.Crape(p).TopFaceUp())
		is.Equal(b.Stock(p).Len(), pile.StockStart)
		is.True(!b.Stock(p).TopFaceUp())
		is.True(b.Waste(p).IsEmpty())
		for _, c := range b.Crape(p).Cards() {
			is.Equal(c.Player(), p)
		}
	}
	for i := 0; i < pile.NumTableau; i++ {
		is.Equal(b.Tableau(i).Len(), 1)
		is.True(b.Tableau(i).TopFaceUp())
		is.Equal(b.Tableau(i).MustTop().Player(), card.Player(i/pile.TableauStart))
	}
	for i := 0; i < pile.NumFoundations; i++ {
		is.True(b.Foundation(i).IsEmpty())
	}
}

func TestNewGameIsReproducible(t *testing.T) {
	is := is.New(t)
	a := NewGame(card.NewRNG("same"))
	b := NewGame(card.NewRNG("same"))
	c := NewGame(card.NewRNG("other"))
	is.Equal(a.ToLayout(), b.ToLayout())
	is.True(a.ToLayout() != c.ToLayout())
}

func TestFirstPlayer(t *testing.T) {
	is := is.New(t)
	b := MustFromLayout(`
		C0: 3d Kc
		C1: Qh1
	`)
	is.Equal(b.FirstPlayer(), card.Player0)

	b = MustFromLayout(`
		C0: 5d
		C1: 9h1
	`)
	is.Equal(b.FirstPlayer(), card.Player1)

	// Crape tie: the tableau decides, highest cards first.
	b = MustFromLayout(`
		C0: 9d
		C1: 9h1
		T0: 2c
		T1: Kd
		T2: 3c
		T3: 4c
		T4: Kh1
		T5: 5h1
		T6: As1
		T7: 2s1
	`)
	is.Equal(b.FirstPlayer(), card.Player1)

	b = MustFromLayout(`
		C0: 9d
		C1: 9h1
	`)
	is.Equal(b.FirstPlayer(), card.Player0)
}

func TestCheckWin(t *testing.T) {
	is := is.New(t)
	b := MustFromLayout(`
		T0: 5d
		S1: 4c1v
	`)
	is.True(b.CheckWin(card.Player0))
	is.True(!b.CheckWin(card.Player1))
}

func TestApply(t *testing.T) {
	is := is.New(t)
	b := MustFromLayout(`
		T0: 5d
		T1: 6c
		S0: Kh Ahv
		C0: 2cv
		C1: 3h1
	`)
	err := b.Apply(move.NewRelocate(card.MustFromString("5d"), pile.TableauID(0), pile.TableauID(1)), card.Player0)
	is.NoErr(err)
	is.True(b.Tableau(0).IsEmpty())
	is.Equal(b.Tableau(1).Len(), 2)

	// Face-down stock card must be flipped first.
	ah := card.MustFromString("Ah")
	err = b.Apply(move.NewRelocate(ah, pile.StockID(0), pile.FoundationID(2)), card.Player0)
	is.True(errors.Is(err, ErrIllegalMove))
	err = b.Apply(move.NewFlip(ah, pile.StockID(0)), card.Player1)
	is.True(errors.Is(err, ErrIllegalMove))
	is.NoErr(b.Apply(move.NewFlip(ah, pile.StockID(0)), card.Player0))
	is.NoErr(b.Apply(move.NewRelocate(ah, pile.StockID(0), pile.FoundationID(2)), card.Player0))
	is.Equal(b.Foundation(2).Len(), 1)

	// Only the owner takes from a crape.
	err = b.Apply(move.NewRelocate(card.MustFromString("3h1"), pile.CrapeID(1), pile.TableauID(0)), card.Player0)
	is.True(errors.Is(err, ErrIllegalMove))

	// Not the top card.
	err = b.Apply(move.NewRelocate(card.MustFromString("6c"), pile.TableauID(1), pile.TableauID(0)), card.Player0)
	is.True(errors.Is(err, ErrIllegalMove))

	// Loading the opponent's crape.
	err = b.Apply(move.NewRelocate(card.MustFromString("5d"), pile.TableauID(1), pile.CrapeID(1)), card.Player0)
	is.True(errors.Is(err, ErrIllegalMove)) // 5d is not a heart
	is.Equal(b.NumCards(), 6)
}

func TestRecycleWaste(t *testing.T) {
	is := is.New(t)
	b := MustFromLayout(`
		X0: 2c 7h Kd
		S0: 9s
	`)
	err := b.Apply(move.NewRecycleWaste(card.Player0), card.Player0)
	is.True(errors.Is(err, ErrIllegalMove))

	b.Stock(card.Player0).Clear()
	err = b.Apply(move.NewRecycleWaste(card.Player1), card.Player0)
	is.True(errors.Is(err, ErrIllegalMove))
	is.NoErr(b.Apply(move.NewRecycleWaste(card.Player0), card.Player0))
	is.True(b.Waste(card.Player0).IsEmpty())
	stock := b.Stock(card.Player0)
	is.Equal(stock.Len(), 3)
	is.True(stock.MustTop().Equal(card.MustFromString("2c")))
	is.True(!stock.TopFaceUp())
}

func TestLegalMoves(t *testing.T) {
	b := MustFromLayout(`
		T0: 5d
		T1: 6c
		S0: Khv
	`)
	var descs []string
	for _, m := range b.LegalMoves(card.Player0) {
		descs = append(descs, m.ShortDescription())
	}
	assert.ElementsMatch(t, []string{
		"flip Kh0 S0",
		"5d0 T0 T1",
		"5d0 T0 T2", "5d0 T0 T3", "5d0 T0 T4", "5d0 T0 T5", "5d0 T0 T6", "5d0 T0 T7",
		"6c0 T1 T2", "6c0 T1 T3", "6c0 T1 T4", "6c0 T1 T5", "6c0 T1 T6", "6c0 T1 T7",
	}, descs)
	for _, m := range b.LegalMoves(card.Player0) {
		assert.NoError(t, b.Copy().Apply(m, card.Player0))
	}
}

func TestSampleLayouts(t *testing.T) {
	for _, name := range SampleLayouts() {
		b := New()
		require.NoError(t, b.SetToLayout(name), name)
	}
	b := New()
	require.NoError(t, b.SetToLayout(FoundationToFill))
	assert.Equal(t, 12, b.Foundation(0).Len())
	assert.True(t, b.Tableau(0).MustTop().Equal(card.MustFromString("Kd")))
	assert.Error(t, b.SetToLayout("nope"))

	require.NoError(t, b.SetToLayout(BrainCombination))
	assert.Equal(t, 8, b.Tableau(0).Len())
	assert.Equal(t, 8, b.Tableau(1).Len())
	assert.False(t, b.Crape(card.Player0).TopFaceUp())
}

func TestLayoutRoundTrip(t *testing.T) {
	is := is.New(t)
	b := NewGame(card.NewRNG("round-trip"))
	c := MustFromLayout(b.ToLayout())
	is.Equal(c.ToLayout(), b.ToLayout())
	is.True(NewHashBoard(b).Equal(NewHashBoard(c)))
}

func TestBadLayouts(t *testing.T) {
	is := is.New(t)
	for _, desc := range []string{"T9: Kd", "T0 Kd", "T0: Zz", "Q0: Kd"} {
		_, err := FromLayout(desc)
		is.True(errors.Is(err, ErrBadLayout))
	}
}

func TestReadLayouts(t *testing.T) {
	is := is.New(t)
	layouts, err := ReadLayouts(strings.NewReader(`
layouts:
  - name: trivial
    player: 1
    piles: |
      T0: 5d
      T1: 6c
  - name: stock
    piles: |
      S0: Kd 4cv
`))
	is.NoErr(err)
	is.Equal(len(layouts), 2)
	is.Equal(layouts[0].Player, card.Player1)
	b, err := layouts[1].Board()
	is.NoErr(err)
	is.Equal(b.Stock(card.Player0).Len(), 2)

	_, err = ReadLayouts(strings.NewReader(`
layouts:
  - name: broken
    piles: "T0: Xx"
`))
	is.True(errors.Is(err, ErrBadLayout))
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	b := New()
	is.NoErr(b.SetToLayout(TrivialMove))
	b.Stock(card.Player1).Push(card.MustFromString("Kh1v"))
	text := b.ToDisplayText(false)
	lines := strings.Split(text, "\n")
	is.Equal(len(lines), 8)
	is.Equal(strings.TrimSpace(lines[1]), "##") // player 1 stock
	is.True(strings.HasSuffix(lines[4], "| 6♣"))
	is.True(strings.HasSuffix(lines[5], "| 5♦"))
	is.Equal(NewHashBoard(b).ToDisplayText(false), text)
}
