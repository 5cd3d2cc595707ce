package board

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
)

func TestSwappedTableauIsEquivalent(t *testing.T) {
	is := is.New(t)
	a := NewHashBoard(MustFromLayout(`
		T0: 5d
		T1: 6c
		T4: Ks Qh
	`))
	b := NewHashBoard(MustFromLayout(`
		T2: Ks Qh
		T6: 6c
		T7: 5d
	`))
	is.True(a.Equal(b))
	is.Equal(a.Hash(), b.Hash())

	c := NewHashBoard(MustFromLayout(`
		T0: 5d
		T1: 6c
		T4: Ks Qd
	`))
	is.True(!a.Equal(c))
}

func TestSwappedFoundationPairIsEquivalent(t *testing.T) {
	is := is.New(t)
	a := NewHashBoard(MustFromLayout(`
		F0: Ad 2d
		F7: Ad1
		F1: Ac
	`))
	b := NewHashBoard(MustFromLayout(`
		F7: Ad 2d
		F0: Ad1
		F1: Ac
	`))
	is.True(a.Equal(b))
	is.Equal(a.Hash(), b.Hash())

	// Clubs are held by F1 and F6, not F2.
	c := NewHashBoard(MustFromLayout(`
		F0: Ad 2d
		F7: Ad1
		F6: Ac
	`))
	is.True(a.Equal(c))
}

func TestPlayerPilesAreNotInterchangeable(t *testing.T) {
	is := is.New(t)
	a := NewHashBoard(MustFromLayout("X0: 4c"))
	b := NewHashBoard(MustFromLayout("X1: 4c"))
	is.True(!a.Equal(b))
	c := NewHashBoard(MustFromLayout("T0: 4c"))
	is.True(!a.Equal(c))
}

func TestFaceIsIgnored(t *testing.T) {
	is := is.New(t)
	a := NewHashBoard(MustFromLayout("C0: 4c 9h"))
	b := NewHashBoard(MustFromLayout("C0: 4cv 9hv"))
	is.True(a.Equal(b))
	is.Equal(a.Hash(), b.Hash())
}

func TestWithMove(t *testing.T) {
	is := is.New(t)
	start := MustFromLayout(`
		T0: 5d
		T1: 6c
		S0: 9h
	`)
	hb := NewHashBoard(start)
	m := move.NewRelocate(card.MustFromString("5d"), pile.TableauID(0), pile.TableauID(1))
	next := hb.WithMove(m)

	// Unchanged piles are shared, changed ones are new and frozen.
	is.True(next.Stock(card.Player0) == hb.Stock(card.Player0))
	is.True(next.Tableau(0) != hb.Tableau(0))
	is.True(next.Tableau(0).Frozen())
	is.True(next.Tableau(1).Frozen())
	is.Equal(hb.Tableau(0).Len(), 1)
	is.Equal(next.Tableau(1).Len(), 2)

	// Same as applying the move to a mutable board.
	played := start.Copy()
	is.NoErr(played.Apply(m, card.Player0))
	is.True(next.Equal(NewHashBoard(played)))

	// The frozen piles cannot be mutated through the hash board.
	assert.Panics(t, func() { next.Tableau(1).Pop() })
	// Only relocations.
	assert.Panics(t, func() { hb.WithMove(move.NewRecycleWaste(card.Player0)) })
	// Board gives a mutable copy.
	mb := next.Board()
	mb.Tableau(1).Pop()
	is.Equal(next.Tableau(1).Len(), 2)
}

func TestSortedTableau(t *testing.T) {
	is := is.New(t)
	hb := NewHashBoard(MustFromLayout(`
		T1: Ks Qh
		T3: 6c
		T5: 5d
	`))
	sorted := hb.SortedTableau()
	is.Equal(len(sorted), pile.NumTableau)
	for i := 0; i < 5; i++ {
		is.True(sorted[i].IsEmpty())
	}
	is.True(sorted[5].MustTop().Equal(card.MustFromString("5d")))
	is.True(sorted[6].MustTop().Equal(card.MustFromString("6c")))
	is.Equal(sorted[7].Len(), 2)
}
