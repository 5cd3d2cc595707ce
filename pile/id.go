package pile

import (
	"errors"
	"fmt"

	"github.com/domino14/crapette/card"
)

var ErrBadPileName = errors.New("unknown pile")

// Kind is the variant tag of a pile. The legality predicates dispatch on it.
type Kind uint8

const (
	Foundation Kind = iota
	Tableau
	Stock
	Waste
	Crape
)

func (k Kind) String() string {
	switch k {
	case Foundation:
		return "Foundation"
	case Tableau:
		return "Tableau"
	case Stock:
		return "Stock"
	case Waste:
		return "Waste"
	case Crape:
		return "Crape"
	}
	return "Unknown"
}

// IsPlayerPile is true for the piles owned by one player.
func (k Kind) IsPlayerPile() bool {
	return k == Stock || k == Waste || k == Crape
}

const (
	NumFoundations = 8
	NumTableau     = 8
	// NumPerPlayer counts the Stock, Waste and Crape of one player.
	NumPerPlayer = 3
	NumPiles     = NumPerPlayer*card.NumPlayers + NumFoundations + NumTableau

	firstFoundation = NumPerPlayer * card.NumPlayers
	firstTableau    = firstFoundation + NumFoundations

	// CrapeStart is the number of cards dealt to each Crape.
	CrapeStart = 13
	// TableauStart is the number of tableau piles each player deals to.
	TableauStart = 4
	// StockStart is what is left of a deck after the deal.
	StockStart = card.NumCards - CrapeStart - TableauStart
)

// FoundationSuits gives the suit of each foundation pile. Foundation i and
// foundation 7-i hold the same suit.
var FoundationSuits = [NumFoundations]card.Suit{
	card.Diamond, card.Club, card.Heart, card.Spade,
	card.Spade, card.Heart, card.Club, card.Diamond,
}

// ID is a stable pile name, usable as an index into a board's arena of
// piles. The order is: Stock0, Waste0, Crape0, Stock1, Waste1, Crape1,
// Foundation0..7, Tableau0..7.
type ID uint8

func StockID(p card.Player) ID { return ID(int(p) * NumPerPlayer) }
func WasteID(p card.Player) ID { return ID(int(p)*NumPerPlayer + 1) }
func CrapeID(p card.Player) ID { return ID(int(p)*NumPerPlayer + 2) }

func FoundationID(i int) ID {
	if i < 0 || i >= NumFoundations {
		panic(fmt.Sprintf("foundation index %d out of range", i))
	}
	return ID(firstFoundation + i)
}

func TableauID(i int) ID {
	if i < 0 || i >= NumTableau {
		panic(fmt.Sprintf("tableau index %d out of range", i))
	}
	return ID(firstTableau + i)
}

// FoundationPair returns the two foundation piles that hold a suit.
func FoundationPair(s card.Suit) (ID, ID) {
	return FoundationID(int(s)), FoundationID(NumFoundations - 1 - int(s))
}

func (id ID) Kind() Kind {
	switch {
	case id < firstFoundation:
		return [NumPerPlayer]Kind{Stock, Waste, Crape}[int(id)%NumPerPlayer]
	case id < firstTableau:
		return Foundation
	case id < NumPiles:
		return Tableau
	}
	panic(fmt.Sprintf("pile id %d out of range", id))
}

// Player is the owner of a Stock, Waste or Crape.
func (id ID) Player() card.Player {
	if !id.Kind().IsPlayerPile() {
		panic(fmt.Sprintf("%v has no owner", id))
	}
	return card.Player(int(id) / NumPerPlayer)
}

// Index is the position of a foundation or tableau pile among its kind.
func (id ID) Index() int {
	switch id.Kind() {
	case Foundation:
		return int(id) - firstFoundation
	case Tableau:
		return int(id) - firstTableau
	}
	panic(fmt.Sprintf("%v has no index", id))
}

// Suit of a foundation pile.
func (id ID) Suit() card.Suit {
	return FoundationSuits[id.Index()]
}

// Mirror is the other foundation pile of the same suit.
func (id ID) Mirror() ID {
	return FoundationID(NumFoundations - 1 - id.Index())
}

func (id ID) String() string {
	switch id.Kind() {
	case Foundation:
		return fmt.Sprintf("Foundation%d%c", id.Index(), id.Suit().Letter())
	case Tableau:
		return fmt.Sprintf("Tableau%d", id.Index())
	}
	return fmt.Sprintf("%s%d", id.Kind(), id.Player())
}

// Abbrev is the short name used by layouts and move descriptions: F0..F7,
// T0..T7, and S, X (waste), C followed by the player.
func (id ID) Abbrev() string {
	switch id.Kind() {
	case Foundation:
		return fmt.Sprintf("F%d", id.Index())
	case Tableau:
		return fmt.Sprintf("T%d", id.Index())
	}
	return fmt.Sprintf("%c%d", "SXC"[int(id)%NumPerPlayer], id.Player())
}

// ParseID reads an abbreviation as produced by Abbrev.
func ParseID(s string) (ID, error) {
	if len(s) != 2 || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("%w: %q", ErrBadPileName, s)
	}
	n := int(s[1] - '0')
	switch s[0] {
	case 'F', 'f':
		if n < NumFoundations {
			return FoundationID(n), nil
		}
	case 'T', 't':
		if n < NumTableau {
			return TableauID(n), nil
		}
	case 'S', 's':
		if n < card.NumPlayers {
			return StockID(card.Player(n)), nil
		}
	case 'X', 'x', 'W', 'w':
		if n < card.NumPlayers {
			return WasteID(card.Player(n)), nil
		}
	case 'C', 'c':
		if n < card.NumPlayers {
			return CrapeID(card.Player(n)), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadPileName, s)
}

// AllIDs lists every pile in arena order.
func AllIDs() []ID {
	ids := make([]ID, NumPiles)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}
