package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/pile"
)

const (
	displayWidth = 88
	blank        = "  "
	faceDown     = "##"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	blackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	backStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func cardText(c card.Card, colored bool) string {
	s := c.RankSuit()
	if !colored {
		return s
	}
	if c.Color() == card.Red {
		return redStyle.Render(s)
	}
	return blackStyle.Render(s)
}

func topText(p *pile.Pile, colored bool) string {
	c, ok := p.Top()
	switch {
	case !ok:
		return blank
	case !c.FaceUp() && colored:
		return backStyle.Render(faceDown)
	case !c.FaceUp():
		return faceDown
	}
	return cardText(c, colored)
}

// ToDisplayText draws a layout the way it sits on the table: player 1 on
// top, the foundations in the middle column with the tableau spreading
// left and right, player 0 at the bottom.
func ToDisplayText(l Layout, colored bool) string {
	var sb strings.Builder
	left := strings.Repeat(" ", card.NumRanks*3)

	sb.WriteString(strings.Repeat("⌄", displayWidth))
	sb.WriteByte('\n')
	sb.WriteString(left)
	sb.WriteString(topText(l.Pile(pile.CrapeID(card.Player1)), colored))
	sb.WriteString(blank)
	sb.WriteString(topText(l.Pile(pile.WasteID(card.Player1)), colored))
	sb.WriteByte(' ')
	sb.WriteString(topText(l.Pile(pile.StockID(card.Player1)), colored))
	sb.WriteByte('\n')

	for row := 0; row < pile.TableauStart; row++ {
		iLeft := row + pile.TableauStart
		iRight := pile.TableauStart - 1 - row
		tl := l.Pile(pile.TableauID(iLeft))
		tr := l.Pile(pile.TableauID(iRight))

		cells := make([]string, 0, 2*card.NumRanks+4)
		for i := tl.Len(); i < card.NumRanks; i++ {
			cells = append(cells, blank)
		}
		for i := tl.Len() - 1; i >= 0; i-- {
			cells = append(cells, cardText(tl.Card(i), colored))
		}
		cells = append(cells, "|",
			topText(l.Pile(pile.FoundationID(iLeft)), colored),
			topText(l.Pile(pile.FoundationID(iRight)), colored),
			"|")
		for _, c := range tr.Cards() {
			cells = append(cells, cardText(c, colored))
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		sb.WriteByte('\n')
	}

	sb.WriteString(left)
	sb.WriteString(topText(l.Pile(pile.StockID(card.Player0)), colored))
	sb.WriteByte(' ')
	sb.WriteString(topText(l.Pile(pile.WasteID(card.Player0)), colored))
	sb.WriteString(blank)
	sb.WriteString(topText(l.Pile(pile.CrapeID(card.Player0)), colored))
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("⌃", displayWidth))
	return sb.String()
}

func (b *Board) ToDisplayText(colored bool) string {
	return ToDisplayText(b, colored)
}
