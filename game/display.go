package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sideTextWidth = 42

func splitSubN(s string, n int) []string {
	runes := []rune(s)
	var subs []string
	for len(runes) > n {
		subs = append(subs, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		subs = append(subs, string(runes))
	}
	return subs
}

// addText writes text to the right of lines, starting at row and wrapping
// onto the rows below. Text past the last line is dropped.
func addText(lines []string, width, row, hpad int, text string) {
	for _, chunk := range splitSubN(text, sideTextWidth) {
		if row >= len(lines) {
			return
		}
		pad := width - lipgloss.Width(lines[row]) + hpad
		lines[row] += strings.Repeat(" ", max(pad, 1)) + chunk
		row++
	}
}

// ToDisplayText renders the board with the game status beside it.
func (g *Game) ToDisplayText(colored bool) string {
	lines := strings.Split(g.board.ToDisplayText(colored), "\n")
	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}
	hpadding := 3

	addText(lines, width, 1, hpadding, fmt.Sprintf("Turn %d, step %d", g.turnnum, g.step))
	if p, ok := g.Winner(); ok {
		addText(lines, width, 2, hpadding, fmt.Sprintf("Player %d won.", p))
	} else {
		addText(lines, width, 2, hpadding, fmt.Sprintf("Player %d to play", g.onturn))
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		addText(lines, width, 3, hpadding, fmt.Sprintf("Last: player %d %s", last.Player, last.Move.ShortDescription()))
	}
	if g.seed != "" {
		addText(lines, width, 5, hpadding, "Seed: "+g.seed)
	}
	return strings.Join(lines, "\n")
}
