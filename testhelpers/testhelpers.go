package testhelpers

import (
	"fmt"
	"testing"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/config"
	"github.com/domino14/crapette/move"
)

var DefaultConfig = config.DefaultConfig()

// Layout builds a board from a layout description, failing the test on a
// bad one.
func Layout(t testing.TB, desc string) *board.Board {
	t.Helper()
	b, err := board.FromLayout(desc)
	if err != nil {
		t.Fatalf("bad test layout: %v", err)
	}
	return b
}

// Sample builds one of the named sample layouts.
func Sample(t testing.TB, name board.LayoutName) *board.Board {
	t.Helper()
	b := board.New()
	if err := b.SetToLayout(name); err != nil {
		t.Fatalf("bad sample layout: %v", err)
	}
	return b
}

// Replay checks and plays moves on b in order. It stops at the first
// illegal one.
func Replay(b *board.Board, player card.Player, moves []move.Move) error {
	for i, m := range moves {
		if err := b.Apply(m, player); err != nil {
			return fmt.Errorf("move %d (%v): %w", i+1, m, err)
		}
	}
	return nil
}
