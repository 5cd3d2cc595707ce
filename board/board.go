// Package board holds the crapette table: the 22 piles, the deal, checked
// move application, and HashBoard, the frozen hashable form used by the
// search.
package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
)

var ErrIllegalMove = errors.New("illegal move")

// A Layout gives read access to the piles of a board-like value. Both
// Board and HashBoard implement it.
type Layout interface {
	Pile(id pile.ID) *pile.Pile
}

// Board is the mutable table. Piles are stored in an arena indexed by
// pile.ID.
type Board struct {
	piles [pile.NumPiles]*pile.Pile
}

// New returns a board with 22 empty piles.
func New() *Board {
	b := &Board{}
	for _, id := range pile.AllIDs() {
		b.piles[id] = pile.New(id)
	}
	return b
}

func (b *Board) Pile(id pile.ID) *pile.Pile { return b.piles[id] }
func (b *Board) Stock(p card.Player) *pile.Pile { return b.piles[pile.StockID(p)] }
func (b *Board) Waste(p card.Player) *pile.Pile { return b.piles[pile.WasteID(p)] }
func (b *Board) Crape(p card.Player) *pile.Pile { return b.piles[pile.CrapeID(p)] }
func (b *Board) Foundation(i int) *pile.Pile { return b.piles[pile.FoundationID(i)] }
func (b *Board) Tableau(i int) *pile.Pile { return b.piles[pile.TableauID(i)] }

// Piles lists every pile in arena order.
func (b *Board) Piles() []*pile.Pile {
	return b.piles[:]
}

// NumCards is 104 on any board reached from a deal.
func (b *Board) NumCards() int {
	return lo.SumBy(b.piles[:], func(p *pile.Pile) int { return p.Len() })
}

// Copy returns a deep, mutable copy.
func (b *Board) Copy() *Board {
	c := &Board{}
	for i, p := range b.piles {
		c.piles[i] = p.Copy()
	}
	return c
}

// CheckWin is true once player has emptied their Stock, Waste and Crape.
func (b *Board) CheckWin(player card.Player) bool {
	return b.Stock(player).IsEmpty() && b.Waste(player).IsEmpty() && b.Crape(player).IsEmpty()
}

// FirstPlayer picks who starts a freshly dealt game: the higher Crape top,
// then the higher tableau cards dealt by each player, then player 0.
func (b *Board) FirstPlayer() card.Player {
	r0, r1 := topRank(b.Crape(card.Player0)), topRank(b.Crape(card.Player1))
	switch {
	case r0 > r1:
		return card.Player0
	case r1 > r0:
		return card.Player1
	}
	ranks := func(from int) []int {
		rs := make([]int, 0, pile.TableauStart)
		for i := from; i < from+pile.TableauStart; i++ {
			rs = append(rs, topRank(b.Tableau(i)))
		}
		slices.SortFunc(rs, func(a, b int) int { return b - a })
		return rs
	}
	if slices.Compare(ranks(0), ranks(pile.TableauStart)) < 0 {
		return card.Player1
	}
	return card.Player0
}

func topRank(p *pile.Pile) int {
	c, ok := p.Top()
	if !ok {
		return 0
	}
	return int(c.Rank())
}

// Check returns a wrapped ErrIllegalMove if player may not play m now.
func (b *Board) Check(m move.Move, player card.Player) error {
	origin := b.piles[m.Origin()]
	switch m.Action() {
	case move.MoveTypeRelocate:
		top, ok := origin.Top()
		if !ok || !top.Equal(m.Card()) {
			return fmt.Errorf("%w: %v is not on top of %v", ErrIllegalMove, m.Card().RankSuit(), origin.ID())
		}
		if m.Origin() == m.Destination() {
			return fmt.Errorf("%w: %v goes nowhere", ErrIllegalMove, m)
		}
		if !top.FaceUp() {
			return fmt.Errorf("%w: %v is face down", ErrIllegalMove, m.Card().RankSuit())
		}
		if !origin.CanPop(player) {
			return fmt.Errorf("%w: player %d cannot take from %v", ErrIllegalMove, player, origin.ID())
		}
		if !b.piles[m.Destination()].CanAdd(top, m.Origin(), player) {
			return fmt.Errorf("%w: %v", ErrIllegalMove, m)
		}

	case move.MoveTypeFlip:
		if !origin.CanFlipUp(player) || !origin.MustTop().Equal(m.Card()) {
			return fmt.Errorf("%w: %v", ErrIllegalMove, m)
		}

	case move.MoveTypeRecycleWaste:
		if origin.Kind() != pile.Waste || origin.ID().Player() != player {
			return fmt.Errorf("%w: player %d cannot recycle %v", ErrIllegalMove, player, origin.ID())
		}
		if !b.Stock(player).IsEmpty() || origin.IsEmpty() {
			return fmt.Errorf("%w: recycling needs an empty stock and a waste", ErrIllegalMove)
		}

	default:
		return fmt.Errorf("%w: unknown move type %v", ErrIllegalMove, m.Action())
	}
	return nil
}

// Apply checks m and plays it for player.
func (b *Board) Apply(m move.Move, player card.Player) error {
	if err := b.Check(m, player); err != nil {
		return err
	}
	b.PlayUnchecked(m)
	return nil
}

// PlayUnchecked plays m without looking at the rules. It panics if the
// piles cannot hold the move at all, e.g. popping an empty pile.
func (b *Board) PlayUnchecked(m move.Move) {
	origin := b.piles[m.Origin()]
	switch m.Action() {
	case move.MoveTypeRelocate:
		b.piles[m.Destination()].Push(origin.Pop())
	case move.MoveTypeFlip:
		origin.SetTopFaceUp(true)
	case move.MoveTypeRecycleWaste:
		// The waste is turned over as a whole: its top becomes the bottom
		// of the stock, every card face down.
		cards := slices.Clone(origin.Cards())
		slices.Reverse(cards)
		for i := range cards {
			cards[i] = cards[i].WithFaceUp(false)
		}
		b.piles[m.Destination()].SetCards(cards)
		origin.Clear()
	}
}

// LegalMoves lists every single move player may make now. The shell lists
// them; the search generates its own candidates.
func (b *Board) LegalMoves(player card.Player) []move.Move {
	var moves []move.Move
	for _, o := range b.piles {
		top, ok := o.Top()
		if !ok {
			continue
		}
		if o.CanFlipUp(player) {
			moves = append(moves, move.NewFlip(top, o.ID()))
			continue
		}
		if !top.FaceUp() || !o.CanPop(player) {
			continue
		}
		for _, d := range b.piles {
			if d.ID() != o.ID() && d.CanAdd(top, o.ID(), player) {
				moves = append(moves, move.NewRelocate(top, o.ID(), d.ID()))
			}
		}
	}
	if b.Stock(player).IsEmpty() && !b.Waste(player).IsEmpty() {
		moves = append(moves, move.NewRecycleWaste(player))
	}
	return moves
}
