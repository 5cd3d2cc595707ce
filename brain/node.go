package brain

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
)

// Cheaper moves are explored first.
var destinationWeight = [...]uint8{
	pile.Foundation: 0,
	pile.Crape:      1,
	pile.Waste:      2,
	pile.Tableau:    3,
}

var originWeight = [...]uint8{
	pile.Tableau: 0,
	pile.Crape:   1,
	pile.Stock:   2,
}

const numOriginWeights = 3

// Cost orders paths: fewer moves first, then move by move by the kind of
// piles involved. Each step packs a destination weight and an origin
// weight so that steps compare like (destination, origin) pairs.
type Cost struct {
	Length int
	Steps  []uint8
}

func (c Cost) Compare(o Cost) int {
	if c.Length != o.Length {
		return c.Length - o.Length
	}
	return slices.Compare(c.Steps, o.Steps)
}

func (c Cost) extend(m move.Move) Cost {
	step := destinationWeight[m.Destination().Kind()]*numOriginWeights +
		originWeight[m.Origin().Kind()]
	steps := make([]uint8, len(c.Steps), len(c.Steps)+1)
	copy(steps, c.Steps)
	return Cost{Length: c.Length + 1, Steps: append(steps, step)}
}

type node struct {
	board   *board.HashBoard
	player  card.Player
	cost    Cost
	score   Score
	visited bool
	moves   []move.Move
	// index is the visit order, seq the insertion order.
	index uint64
	seq   uint64
}

func newNode(hb *board.HashBoard, player card.Player) *node {
	return &node{board: hb, player: player, score: BoardScore(hb, player)}
}

func (n *node) lastMove() (move.Move, bool) {
	if len(n.moves) == 0 {
		return move.Move{}, false
	}
	return n.moves[len(n.moves)-1], true
}

// terminal is true once the path took a card out of a player pile: that
// move ends the turn.
func (n *node) terminal() bool {
	m, ok := n.lastMove()
	return ok && m.Origin().Kind().IsPlayerPile()
}

// destinations lists the piles worth putting a card on: the foundations
// minus a mirror that holds as many cards as its twin, one tableau pile per
// distinct content, and the opponent's non-empty crape and waste.
func (n *node) destinations(cfg Config) (foundations, tableau, enemy []*pile.Pile) {
	hb := n.board
	half := pile.NumFoundations / 2
	for i := 0; i < half; i++ {
		foundations = append(foundations, hb.Foundation(i))
	}
	for i := half; i < pile.NumFoundations; i++ {
		f := hb.Foundation(i)
		if f.Len() != hb.Pile(f.ID().Mirror()).Len() {
			foundations = append(foundations, f)
		}
	}

	var candidates []*pile.Pile
	if cfg.Reproducible {
		candidates = hb.SortedTableau()
	} else {
		candidates = hb.Piles()[pile.TableauID(0) : pile.TableauID(pile.NumTableau-1)+1]
	}
	for _, p := range candidates {
		if !slices.ContainsFunc(tableau, p.Equal) {
			tableau = append(tableau, p)
		}
	}

	other := n.player.Other()
	for _, p := range []*pile.Pile{hb.Crape(other), hb.Waste(other)} {
		if !p.IsEmpty() {
			enemy = append(enemy, p)
		}
	}
	return foundations, tableau, enemy
}

// origins lists the piles worth taking a card from.
func (n *node) origins(cfg Config, foundations, tableau, enemy []*pile.Pile) []*pile.Pile {
	var origins []*pile.Pile
	for i := 0; i < pile.NumTableau; i++ {
		if p := n.board.Tableau(i); p.TopFaceUp() {
			origins = append(origins, p)
		}
	}

	if cfg.filtering() {
		nonEmpty := lo.Filter(tableau, func(p *pile.Pile, _ int) bool { return !p.IsEmpty() })
		kept := origins[:0:0]
		for _, o := range origins {
			var useful bool
			if cfg.FilterOriginsAggressive {
				useful = slices.ContainsFunc(nonEmpty, func(d *pile.Pile) bool {
					return d.CanAdd(o.Card(0), o.ID(), n.player)
				}) || n.anyCardFits(o, slices.Concat(foundations, enemy))
			} else {
				useful = n.anyCardFits(o, slices.Concat(foundations, enemy, origins))
			}
			if useful {
				kept = append(kept, o)
			}
		}
		origins = kept
	}

	if c := n.board.Crape(n.player); c.TopFaceUp() {
		origins = append(origins, c)
	}
	if s := n.board.Stock(n.player); s.TopFaceUp() {
		origins = append(origins, s)
	}
	return origins
}

func (n *node) anyCardFits(o *pile.Pile, destinations []*pile.Pile) bool {
	for _, c := range o.Cards() {
		for _, d := range destinations {
			if d.CanAdd(c, o.ID(), n.player) {
				return true
			}
		}
	}
	return false
}

// neighbors calls visit for every move worth exploring from n.
func (n *node) neighbors(cfg Config, visit func(move.Move)) {
	if n.terminal() {
		return
	}
	foundations, tableau, enemy := n.destinations(cfg)
	destinations := slices.Concat(foundations, tableau, enemy)
	last, hasLast := n.lastMove()

	for _, o := range n.origins(cfg, foundations, tableau, enemy) {
		c := o.MustTop()
		loneTableau := o.Kind() == pile.Tableau && o.Len() == 1
		for _, d := range destinations {
			if !d.CanAdd(c, o.ID(), n.player) {
				continue
			}
			if d.ID() == o.ID() {
				continue
			}
			// Moving a lone card to an empty slot only renames the slot.
			if loneTableau && d.Kind() == pile.Tableau && d.IsEmpty() {
				continue
			}
			m := move.NewRelocate(c, o.ID(), d.ID())
			if hasLast && m.Undoes(last) {
				continue
			}
			visit(m)
		}
	}
}
