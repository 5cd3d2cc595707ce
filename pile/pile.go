// Package pile implements the five kinds of crapette piles and their
// legality rules.
package pile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/zobrist"
)

var keys zobrist.Zobrist

func init() {
	keys.Initialize(card.TotalCards)
}

// A Pile is an ordered stack of cards; the last card is the top. Once
// frozen, a pile can be shared between boards and any mutation panics.
type Pile struct {
	id     ID
	cards  []card.Card
	frozen bool
	key    uint64
}

func New(id ID) *Pile {
	return &Pile{id: id}
}

func (p *Pile) ID() ID { return p.id }
func (p *Pile) Kind() Kind { return p.id.Kind() }
func (p *Pile) Name() string { return p.id.String() }
func (p *Pile) Len() int { return len(p.cards) }
func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

// Cards is a read-only view of the pile, bottom first.
func (p *Pile) Cards() []card.Card {
	return p.cards
}

func (p *Pile) Card(i int) card.Card {
	return p.cards[i]
}

// Top returns the top card, if any.
func (p *Pile) Top() (card.Card, bool) {
	if len(p.cards) == 0 {
		return card.Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

// MustTop returns the top card and panics on an empty pile.
func (p *Pile) MustTop() card.Card {
	if len(p.cards) == 0 {
		panic(fmt.Sprintf("no top card in empty %v", p.id))
	}
	return p.cards[len(p.cards)-1]
}

// TopFaceUp is false for an empty pile.
func (p *Pile) TopFaceUp() bool {
	c, ok := p.Top()
	return ok && c.FaceUp()
}

// Key is a hash of the pile content that ignores faces.
func (p *Pile) Key() uint64 {
	return p.key
}

func (p *Pile) Frozen() bool {
	return p.frozen
}

func (p *Pile) Freeze() {
	p.frozen = true
}

func (p *Pile) mustNotBeFrozen(op string) {
	if p.frozen {
		panic(fmt.Sprintf("cannot %s frozen %v", op, p.id))
	}
}

// Push adds a card on top. Nothing is checked; see CanAdd.
func (p *Pile) Push(c card.Card) {
	p.mustNotBeFrozen("push to")
	p.key = keys.Toggle(p.key, len(p.cards), c)
	p.cards = append(p.cards, c)
}

// Pop takes the top card. Nothing is checked; see CanPop.
func (p *Pile) Pop() card.Card {
	p.mustNotBeFrozen("pop from")
	if len(p.cards) == 0 {
		panic(fmt.Sprintf("no card to pop in %v", p.id))
	}
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	p.key = keys.Toggle(p.key, len(p.cards), c)
	return c
}

// SetCards replaces the content of the pile. Nothing is checked.
func (p *Pile) SetCards(cards []card.Card) {
	p.mustNotBeFrozen("set cards of")
	p.cards = slices.Clone(cards)
	p.key = keys.Hash(p.cards)
}

func (p *Pile) Clear() {
	p.SetCards(nil)
}

// SetTopFaceUp turns the top card face up or down.
func (p *Pile) SetTopFaceUp(up bool) {
	p.mustNotBeFrozen("flip top of")
	if len(p.cards) == 0 {
		panic(fmt.Sprintf("no card to flip in %v", p.id))
	}
	p.cards[len(p.cards)-1] = p.cards[len(p.cards)-1].WithFaceUp(up)
}

// Copy returns a mutable deep copy.
func (p *Pile) Copy() *Pile {
	return &Pile{id: p.id, cards: slices.Clone(p.cards), key: p.key}
}

// FrozenCopy returns a frozen deep copy.
func (p *Pile) FrozenCopy() *Pile {
	c := p.Copy()
	c.frozen = true
	return c
}

// WithPushed returns a new frozen pile holding this pile's cards plus c.
func (p *Pile) WithPushed(c card.Card) *Pile {
	cards := make([]card.Card, len(p.cards), len(p.cards)+1)
	copy(cards, p.cards)
	return &Pile{
		id:     p.id,
		cards:  append(cards, c),
		frozen: true,
		key:    keys.Toggle(p.key, len(p.cards), c),
	}
}

// WithPopped returns a new frozen pile holding this pile's cards minus the
// top one.
func (p *Pile) WithPopped() *Pile {
	top := p.MustTop()
	n := len(p.cards) - 1
	return &Pile{
		id:     p.id,
		cards:  slices.Clone(p.cards[:n]),
		frozen: true,
		key:    keys.Toggle(p.key, n, top),
	}
}

// Equal compares content only: same cards in the same order, faces
// ignored. The pile names may differ.
func (p *Pile) Equal(o *Pile) bool {
	if len(p.cards) != len(o.cards) || p.key != o.key {
		return false
	}
	for i := range p.cards {
		if !p.cards[i].Equal(o.cards[i]) {
			return false
		}
	}
	return true
}

// Compare is a total order on pile content: shorter piles first, then card
// by card from the bottom.
func (p *Pile) Compare(o *Pile) int {
	if len(p.cards) != len(o.cards) {
		return len(p.cards) - len(o.cards)
	}
	for i := range p.cards {
		if c := p.cards[i].Compare(o.cards[i]); c != 0 {
			return c
		}
	}
	return 0
}

// String shows the face-up cards, e.g. "Tableau2[K♠ Q♥]".
func (p *Pile) String() string {
	var sb strings.Builder
	sb.WriteString(p.id.String())
	sb.WriteByte('[')
	first := true
	for _, c := range p.cards {
		if !c.FaceUp() {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.RankSuit())
		first = false
	}
	sb.WriteByte(']')
	return sb.String()
}
