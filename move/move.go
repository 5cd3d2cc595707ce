// Package move describes the three kinds of crapette moves.
package move

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/pile"
)

// MoveType is a type of move: relocate a card, flip a card, or turn the
// waste over into the stock.
type MoveType uint8

const (
	MoveTypeRelocate MoveType = iota
	MoveTypeFlip
	MoveTypeRecycleWaste
)

func (t MoveType) String() string {
	switch t {
	case MoveTypeRelocate:
		return "relocate"
	case MoveTypeFlip:
		return "flip"
	case MoveTypeRecycleWaste:
		return "recycle"
	}
	return "unknown"
}

var ErrBadMoveString = errors.New("cannot parse move")

// Move is an immutable value. For a flip, Origin and Destination are the
// flipped pile; for a recycle, Origin is the Waste and Destination the
// Stock of the same player.
type Move struct {
	action      MoveType
	card        card.Card
	origin      pile.ID
	destination pile.ID
}

// Key is a comparable identity of a move, usable as a map key. Faces are
// not part of it.
type Key struct {
	Action      MoveType
	CardID      int
	Origin      pile.ID
	Destination pile.ID
}

func NewRelocate(c card.Card, origin, destination pile.ID) Move {
	return Move{action: MoveTypeRelocate, card: c, origin: origin, destination: destination}
}

func NewFlip(c card.Card, p pile.ID) Move {
	return Move{action: MoveTypeFlip, card: c, origin: p, destination: p}
}

// NewRecycleWaste turns player's waste over into their empty stock.
func NewRecycleWaste(player card.Player) Move {
	return Move{
		action:      MoveTypeRecycleWaste,
		origin:      pile.WasteID(player),
		destination: pile.StockID(player),
	}
}

func (m Move) Action() MoveType { return m.action }
func (m Move) Card() card.Card { return m.card }
func (m Move) Origin() pile.ID { return m.origin }
func (m Move) Destination() pile.ID { return m.destination }
func (m Move) IsRelocate() bool { return m.action == MoveTypeRelocate }

// Equal compares the kind, the card identity and both piles.
func (m Move) Equal(o Move) bool {
	return m.Key() == o.Key()
}

func (m Move) Key() Key {
	k := Key{Action: m.action, Origin: m.origin, Destination: m.destination}
	if m.action != MoveTypeRecycleWaste {
		k.CardID = m.card.ID()
	}
	return k
}

// Undoes is true if m takes back prev: both are relocations between the
// same two piles in opposite directions.
func (m Move) Undoes(prev Move) bool {
	return m.action == MoveTypeRelocate && prev.action == MoveTypeRelocate &&
		m.origin == prev.destination && m.destination == prev.origin
}

func (m Move) String() string {
	switch m.action {
	case MoveTypeRelocate:
		return fmt.Sprintf("Move %s from %v to %v", m.card.RankSuit(), m.origin, m.destination)
	case MoveTypeFlip:
		return fmt.Sprintf("Flip %s on %v", m.card.RankSuit(), m.origin)
	case MoveTypeRecycleWaste:
		return fmt.Sprintf("Flip %v to %v", m.origin, m.destination)
	}
	return "<invalid move>"
}

// ShortDescription is the form read back by FromString:
// "Kd1 T3 F0", "flip Kd1 C1", "recycle X1".
func (m Move) ShortDescription() string {
	switch m.action {
	case MoveTypeRelocate:
		return fmt.Sprintf("%s %s %s", m.card.Code(), m.origin.Abbrev(), m.destination.Abbrev())
	case MoveTypeFlip:
		return fmt.Sprintf("flip %s %s", m.card.Code(), m.origin.Abbrev())
	}
	return "recycle " + m.origin.Abbrev()
}

// FromString parses a short description.
func FromString(s string) (Move, error) {
	fields := strings.Fields(s)
	switch {
	case len(fields) == 2 && strings.EqualFold(fields[0], "recycle"):
		id, err := pile.ParseID(fields[1])
		if err != nil {
			return Move{}, err
		}
		if id.Kind() != pile.Waste {
			return Move{}, fmt.Errorf("%w: recycle needs a waste, got %v", ErrBadMoveString, id)
		}
		return NewRecycleWaste(id.Player()), nil

	case len(fields) == 3 && strings.EqualFold(fields[0], "flip"):
		c, err := card.FromString(fields[1])
		if err != nil {
			return Move{}, err
		}
		id, err := pile.ParseID(fields[2])
		if err != nil {
			return Move{}, err
		}
		return NewFlip(c, id), nil

	case len(fields) == 3:
		c, err := card.FromString(fields[0])
		if err != nil {
			return Move{}, err
		}
		origin, err := pile.ParseID(fields[1])
		if err != nil {
			return Move{}, err
		}
		dest, err := pile.ParseID(fields[2])
		if err != nil {
			return Move{}, err
		}
		return NewRelocate(c, origin, dest), nil
	}
	return Move{}, fmt.Errorf("%w: %q", ErrBadMoveString, s)
}

// ListString shows a move list one per line.
func ListString(moves []Move) string {
	var sb strings.Builder
	for i, m := range moves {
		fmt.Fprintf(&sb, "%d. %v\n", i+1, m)
	}
	return sb.String()
}
