package board

import (
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/pile"
)

// NewGame deals a fresh game. Each player's shuffled deck gives 13 cards to
// their Crape (top face up), one face-up card to each of their four tableau
// piles (player 0 deals to Tableau0..3, player 1 to Tableau4..7), and the
// remaining 35 face-down cards to their Stock.
func NewGame(rng *frand.RNG) *Board {
	b := New()
	for _, player := range card.Players {
		deck := card.NewDeck(player)
		card.Shuffle(deck, rng)

		crape := b.Crape(player)
		crape.SetCards(deck[len(deck)-pile.CrapeStart:])
		crape.SetTopFaceUp(true)
		deck = deck[:len(deck)-pile.CrapeStart]

		first := int(player) * pile.TableauStart
		for i := first; i < first+pile.TableauStart; i++ {
			c := deck[len(deck)-1]
			deck = deck[:len(deck)-1]
			b.Tableau(i).Push(c.WithFaceUp(true))
		}
		b.Stock(player).SetCards(deck)
	}
	log.Debug().Int("cards", b.NumCards()).Msg("dealt-new-game")
	return b
}
