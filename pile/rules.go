package pile

import "github.com/domino14/crapette/card"

// CanAdd checks if player may put c, taken from origin, on top of the pile.
func (p *Pile) CanAdd(c card.Card, origin ID, player card.Player) bool {
	switch p.Kind() {
	case Foundation:
		// Same suit, built up from the Ace.
		return c.Suit() == p.id.Suit() && int(c.Rank()) == len(p.cards)+1

	case Tableau:
		top, ok := p.Top()
		if !ok {
			return true
		}
		return c.Rank()+1 == top.Rank() && !c.SameColor(top)

	case Stock:
		return false

	case Waste:
		if p.id.Player() == player {
			// The last move of a turn: the owner throws their own stock card.
			return origin.Kind() == Stock && origin.Player() == player
		}
		top, ok := p.Top()
		if !ok {
			return false
		}
		return c.Suit() == top.Suit() && c.IsAboveOrBelow(top)

	case Crape:
		if p.id.Player() == player {
			return false
		}
		top, ok := p.Top()
		if !ok || !top.FaceUp() {
			return false
		}
		return c.Suit() == top.Suit() && c.IsAboveOrBelow(top)
	}
	return false
}

// CanPop checks if player may take the top card.
func (p *Pile) CanPop(player card.Player) bool {
	switch p.Kind() {
	case Foundation, Waste:
		return false
	case Tableau:
		return true
	case Stock, Crape:
		return p.id.Player() == player
	}
	return false
}

// CanFlipUp checks if player may turn the top card face up.
func (p *Pile) CanFlipUp(player card.Player) bool {
	switch p.Kind() {
	case Stock, Crape:
		top, ok := p.Top()
		return ok && p.id.Player() == player && !top.FaceUp()
	}
	return false
}

// IsFull is true for a foundation built up to the King. The UI turns such
// a pile face down; the engine only exposes the predicate.
func (p *Pile) IsFull() bool {
	return p.Kind() == Foundation && len(p.cards) == card.NumRanks
}
