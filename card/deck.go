package card

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

const seedChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewDeck returns a fresh, sorted, face-down deck for a player.
func NewDeck(player Player) []Card {
	deck := make([]Card, 0, NumCards)
	for _, s := range Suits {
		for r := Rank(MinRank); r <= MaxRank; r++ {
			deck = append(deck, New(r, s, player))
		}
	}
	return deck
}

// NewRNG makes a reproducible generator out of a seed string. The same seed
// always deals the same game.
func NewRNG(seed string) *frand.RNG {
	var key [32]byte
	for i := 0; i < 4; i++ {
		// Spread the seed over the 256-bit key, one salted hash per word.
		binary.LittleEndian.PutUint64(key[i*8:], xxhash.Sum64String(string(rune('a'+i))+seed))
	}
	return frand.NewCustom(key[:], 1024, 12)
}

// GenerateSeed returns a random seed for NewRNG. 2^104 deals need at least
// 18 alphanumeric characters; we use 20.
func GenerateSeed() string {
	b := make([]byte, 20)
	for i := range b {
		b[i] = seedChars[frand.Intn(len(seedChars))]
	}
	return string(b)
}

func Shuffle(deck []Card, rng *frand.RNG) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
