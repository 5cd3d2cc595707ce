package board

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
)

const (
	canonFoundations = pile.NumPerPlayer * card.NumPlayers
	canonTableau     = canonFoundations + pile.NumFoundations
)

// HashBoard is a frozen board used as a search node. Two hash boards are
// equivalent when they only differ by the order of the tableau piles, by
// the order of the two foundation piles of a suit, or by which cards face
// up. Piles that a move does not touch are shared between hash boards.
type HashBoard struct {
	piles [pile.NumPiles]*pile.Pile
	// canon is the canonical pile order: the six player piles, then each
	// foundation pair sorted by content, then the sorted tableau.
	canon [pile.NumPiles]pile.ID
	hash  uint64
}

// NewHashBoard takes a frozen deep copy of b.
func NewHashBoard(b *Board) *HashBoard {
	hb := &HashBoard{}
	for i, p := range b.piles {
		hb.piles[i] = p.FrozenCopy()
	}
	hb.index()
	return hb
}

// WithMove returns the hash board reached by a relocation. Only the origin
// and destination piles are new. Flips and recycles never happen inside a
// search and make it panic.
func (hb *HashBoard) WithMove(m move.Move) *HashBoard {
	if m.Action() != move.MoveTypeRelocate {
		panic(fmt.Sprintf("hash boards only take relocations, not %v", m))
	}
	origin := hb.piles[m.Origin()]
	top := origin.MustTop()
	if !top.Equal(m.Card()) {
		panic(fmt.Sprintf("%v is not on top of %v", m.Card(), origin))
	}
	next := &HashBoard{piles: hb.piles}
	next.piles[m.Origin()] = origin.WithPopped()
	next.piles[m.Destination()] = hb.piles[m.Destination()].WithPushed(top)
	next.index()
	return next
}

func (hb *HashBoard) index() {
	for i := 0; i < canonFoundations; i++ {
		hb.canon[i] = pile.ID(i)
	}
	for s, suit := range card.Suits {
		a, b := pile.FoundationPair(suit)
		if hb.piles[b].Compare(hb.piles[a]) < 0 {
			a, b = b, a
		}
		hb.canon[canonFoundations+2*s] = a
		hb.canon[canonFoundations+2*s+1] = b
	}
	tableau := hb.canon[canonTableau:]
	for i := range tableau {
		tableau[i] = pile.TableauID(i)
	}
	slices.SortStableFunc(tableau, func(a, b pile.ID) int {
		return hb.piles[a].Compare(hb.piles[b])
	})

	var buf [pile.NumPiles * 8]byte
	for i, id := range hb.canon {
		binary.LittleEndian.PutUint64(buf[i*8:], hb.piles[id].Key())
	}
	hb.hash = xxhash.Sum64(buf[:])
}

func (hb *HashBoard) Hash() uint64 {
	return hb.hash
}

// Equal is equivalence, not identity; see HashBoard.
func (hb *HashBoard) Equal(o *HashBoard) bool {
	if hb.hash != o.hash {
		return false
	}
	for i := range hb.canon {
		if !hb.piles[hb.canon[i]].Equal(o.piles[o.canon[i]]) {
			return false
		}
	}
	return true
}

func (hb *HashBoard) Pile(id pile.ID) *pile.Pile { return hb.piles[id] }
func (hb *HashBoard) Stock(p card.Player) *pile.Pile { return hb.piles[pile.StockID(p)] }
func (hb *HashBoard) Waste(p card.Player) *pile.Pile { return hb.piles[pile.WasteID(p)] }
func (hb *HashBoard) Crape(p card.Player) *pile.Pile { return hb.piles[pile.CrapeID(p)] }
func (hb *HashBoard) Foundation(i int) *pile.Pile { return hb.piles[pile.FoundationID(i)] }
func (hb *HashBoard) Tableau(i int) *pile.Pile { return hb.piles[pile.TableauID(i)] }

// Piles lists every pile in arena order.
func (hb *HashBoard) Piles() []*pile.Pile {
	return hb.piles[:]
}

// SortedTableau lists the tableau piles in canonical order.
func (hb *HashBoard) SortedTableau() []*pile.Pile {
	ps := make([]*pile.Pile, 0, pile.NumTableau)
	for _, id := range hb.canon[canonTableau:] {
		ps = append(ps, hb.piles[id])
	}
	return ps
}

// Board returns a mutable copy.
func (hb *HashBoard) Board() *Board {
	b := &Board{}
	for i, p := range hb.piles {
		b.piles[i] = p.Copy()
	}
	return b
}

func (hb *HashBoard) ToDisplayText(colored bool) string {
	return ToDisplayText(hb, colored)
}
