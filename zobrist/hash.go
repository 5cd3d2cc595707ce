package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/crapette/card"
)

const bignum = 1<<63 - 2

// Zobrist keys the content of a pile of cards: every (depth, card) pair gets
// a random word and a pile's key is the XOR of its cards' words. Pushing or
// popping the top card is then a single XOR.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// Face orientation is not part of the key.
type Zobrist struct {
	posTable [][]uint64
	maxDepth int
}

func (z *Zobrist) Initialize(maxDepth int) {
	z.maxDepth = maxDepth
	z.posTable = make([][]uint64, maxDepth)
	for i := 0; i < maxDepth; i++ {
		z.posTable[i] = make([]uint64, card.TotalCards)
		for j := 0; j < card.TotalCards; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

func (z *Zobrist) Hash(cards []card.Card) uint64 {
	key := uint64(0)
	for depth, c := range cards {
		key ^= z.posTable[depth][c.ID()]
	}
	return key
}

// Toggle adds the card at depth to the key, or removes it if it was there.
func (z *Zobrist) Toggle(key uint64, depth int, c card.Card) uint64 {
	return key ^ z.posTable[depth][c.ID()]
}
