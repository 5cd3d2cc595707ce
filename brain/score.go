package brain

import (
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/pile"
)

// ScoreLen is the number of components of a Score.
const ScoreLen = 4 + pile.NumTableau

// Score ranks how far a position has progressed for one player. Scores
// compare lexicographically and higher is better:
//
//	0: cards on all foundations
//	1: minus the size of the player's crape
//	2: minus the size of the player's stock
//	3: number of empty tableau piles
//	4..11: tableau pile sizes, largest first
type Score [ScoreLen]int

// WorstScore is below any score of a real position.
var WorstScore = func() Score {
	var s Score
	for i := range s {
		s[i] = math.MinInt
	}
	return s
}()

// BoardScore scores a board-like value for player.
func BoardScore(l board.Layout, player card.Player) Score {
	var s Score
	for i := 0; i < pile.NumFoundations; i++ {
		s[0] += l.Pile(pile.FoundationID(i)).Len()
	}
	s[1] = -l.Pile(pile.CrapeID(player)).Len()
	s[2] = -l.Pile(pile.StockID(player)).Len()

	sizes := lo.Times(pile.NumTableau, func(i int) int {
		return l.Pile(pile.TableauID(i)).Len()
	})
	s[3] = lo.Count(sizes, 0)
	slices.SortFunc(sizes, func(a, b int) int { return b - a })
	copy(s[4:], sizes)
	return s
}

func (s Score) Compare(o Score) int {
	return slices.Compare(s[:], o[:])
}

func (s Score) Less(o Score) bool {
	return s.Compare(o) < 0
}
