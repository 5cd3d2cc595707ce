package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/move"
)

// Event is one applied move.
type Event struct {
	Step   int
	Turn   int
	Player card.Player
	Move   move.Move
}

func (e Event) String() string {
	return fmt.Sprintf("%d. [turn %d] player %d: %v", e.Step, e.Turn, e.Player, e.Move)
}

// HistoryString lists the events, one per line, in short notation.
func (g *Game) HistoryString() string {
	var sb strings.Builder
	for _, e := range g.history {
		fmt.Fprintf(&sb, "%d %d %s\n", e.Step, e.Player, e.Move.ShortDescription())
	}
	return sb.String()
}

func (g *Game) logStep(player card.Player, m move.Move) {
	if g.logStream == nil {
		return
	}
	fmt.Fprintf(g.logStream, "\n\n*** %d ***\nPlayer %d: %v\n%s\n",
		g.step, player, m, g.board.ToDisplayText(false))
}

// openTrace opens the search trace for the current step, or returns nil
// when traces are off. Traces live in one directory per game.
func (g *Game) openTrace() (*os.File, error) {
	if g.traceDir == "" {
		return nil, nil
	}
	dir := filepath.Join(g.traceDir, g.uid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(dir, fmt.Sprintf("log_%04d.txt", g.step)))
}
