// Package card contains the playing card value used everywhere in crapette.
// A card knows its rank, its suit, which player's deck it came from, and
// whether it currently faces up.
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinRank  = 1
	MaxRank  = 13
	NumRanks = MaxRank - MinRank + 1
	NumSuits = 4
	// NumCards is the number of cards in one player's deck.
	NumCards = NumRanks * NumSuits
	// NumPlayers is always two.
	NumPlayers = 2
	// TotalCards is the number of cards on a crapette table.
	TotalCards = NumCards * NumPlayers
)

var ErrBadCardString = errors.New("cannot parse card")

type Rank uint8

func (r Rank) Symbol() string {
	switch r {
	case 1:
		return "A"
	case 10:
		return "0"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	}
	return strconv.Itoa(int(r))
}

func (r Rank) Name() string {
	switch r {
	case 1:
		return "Ace"
	case 11:
		return "Jack"
	case 12:
		return "Queen"
	case 13:
		return "King"
	}
	return strconv.Itoa(int(r))
}

// Suit order matches the foundation layout (d, c, h, s).
type Suit uint8

const (
	Diamond Suit = iota
	Club
	Heart
	Spade
)

var Suits = [NumSuits]Suit{Diamond, Club, Heart, Spade}

func (s Suit) Symbol() string {
	switch s {
	case Diamond:
		return "♦"
	case Club:
		return "♣"
	case Heart:
		return "♥"
	case Spade:
		return "♠"
	}
	return "?"
}

func (s Suit) Letter() byte {
	return "dchs"[s]
}

func (s Suit) Color() Color {
	if s == Diamond || s == Heart {
		return Red
	}
	return Black
}

func SuitFromLetter(l byte) (Suit, error) {
	switch l {
	case 'd':
		return Diamond, nil
	case 'c':
		return Club, nil
	case 'h':
		return Heart, nil
	case 's':
		return Spade, nil
	}
	return 0, fmt.Errorf("%w: unknown suit %q", ErrBadCardString, l)
}

type Color uint8

const (
	Red Color = iota
	Black
)

// Player is 0 or 1.
type Player uint8

const (
	Player0 Player = iota
	Player1
)

var Players = [NumPlayers]Player{Player0, Player1}

func (p Player) Other() Player {
	return 1 - p
}

// Card is a playing card. Equality (see Equal and ID) only looks at the rank,
// the suit and the owning player; the face is mutable state.
type Card struct {
	rank   Rank
	suit   Suit
	player Player
	faceUp bool
}

// New creates a face-down card. It panics on an out-of-range value.
func New(rank Rank, suit Suit, player Player) Card {
	if rank < MinRank || rank > MaxRank {
		panic(fmt.Sprintf("rank %d out of range", rank))
	}
	if suit >= NumSuits {
		panic(fmt.Sprintf("suit %d out of range", suit))
	}
	if player >= NumPlayers {
		panic(fmt.Sprintf("player %d out of range", player))
	}
	return Card{rank: rank, suit: suit, player: player}
}

// NewUp creates a face-up card.
func NewUp(rank Rank, suit Suit, player Player) Card {
	c := New(rank, suit, player)
	c.faceUp = true
	return c
}

func (c Card) Rank() Rank { return c.rank }
func (c Card) Suit() Suit { return c.suit }
func (c Card) Player() Player { return c.player }
func (c Card) FaceUp() bool { return c.faceUp }
func (c Card) Color() Color { return c.suit.Color() }
func (c Card) SuitSymbol() string { return c.suit.Symbol() }
func (c Card) RankSymbol() string { return c.rank.Symbol() }

// ID is a stable identity in [0, TotalCards). Face is not part of it.
func (c Card) ID() int {
	return int(c.player)*NumCards + int(c.suit)*NumRanks + int(c.rank) - MinRank
}

func (c Card) WithFaceUp(up bool) Card {
	c.faceUp = up
	return c
}

func (c Card) Equal(o Card) bool {
	return c.rank == o.rank && c.suit == o.suit && c.player == o.player
}

// Less orders by rank, then suit, then player.
func (c Card) Less(o Card) bool {
	return c.Compare(o) < 0
}

func (c Card) Compare(o Card) int {
	switch {
	case c.rank != o.rank:
		return int(c.rank) - int(o.rank)
	case c.suit != o.suit:
		return int(c.suit) - int(o.suit)
	}
	return int(c.player) - int(o.player)
}

func (c Card) SameColor(o Card) bool {
	return c.suit.Color() == o.suit.Color()
}

// IsAboveOrBelow is true if the ranks are one apart.
func (c Card) IsAboveOrBelow(o Card) bool {
	return c.rank == o.rank+1 || o.rank == c.rank+1
}

// RankSuit is the short display form, e.g. "K♦".
func (c Card) RankSuit() string {
	return c.rank.Symbol() + c.suit.Symbol()
}

func (c Card) String() string {
	if c.faceUp {
		return c.RankSuit() + "^"
	}
	return c.RankSuit() + "v"
}

// Code is the ASCII form accepted by FromString, e.g. "Kd1".
func (c Card) Code() string {
	return fmt.Sprintf("%s%c%d", c.rank.Symbol(), c.suit.Letter(), c.player)
}

// FromString parses forms like "Kd", "10h1", "0h" or "As0v". The optional
// digit after the suit letter is the owning player (default 0); a trailing
// "v" makes the card face down and "^" (or nothing) face up.
func FromString(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCardString, s)
	}
	faceUp := true
	switch s[len(s)-1] {
	case 'v':
		faceUp = false
		s = s[:len(s)-1]
	case '^':
		s = s[:len(s)-1]
	}
	player := Player0
	if last := s[len(s)-1]; last == '0' || last == '1' {
		// "0h" is the ten of hearts; only treat a digit as a player if a
		// suit letter precedes it.
		if len(s) >= 3 && strings.IndexByte("dchs", s[len(s)-2]) >= 0 {
			player = Player(last - '0')
			s = s[:len(s)-1]
		}
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCardString, s)
	}
	suit, err := SuitFromLetter(s[len(s)-1])
	if err != nil {
		return Card{}, err
	}
	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, err
	}
	c := New(rank, suit, player)
	c.faceUp = faceUp
	return c, nil
}

// MustFromString is FromString for tests and fixed layouts.
func MustFromString(s string) Card {
	c, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return 1, nil
	case "0", "T":
		return 10, nil
	case "J":
		return 11, nil
	case "Q":
		return 12, nil
	case "K":
		return 13, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < MinRank || n > MaxRank {
		return 0, fmt.Errorf("%w: bad rank %q", ErrBadCardString, s)
	}
	return Rank(n), nil
}
