package alphabet

import (
	"fmt"

	"lukechampine.com/frand"
)

// A Bag is the bag o'letters! Drawing from it consumes it; make a new
// bag per round.
type Bag struct {
	tiles []rune
}

// MakeBag expands the distribution into a shuffled bag of letters.
func (ld LetterDistribution) MakeBag() *Bag {
	tiles := make([]rune, 0, ld.numLetters)
	for r, ct := range ld.distribution {
		for j := uint8(0); j < ct; j++ {
			tiles = append(tiles, r)
		}
	}
	b := &Bag{tiles: tiles}
	b.Shuffle()
	return b
}

// Draw draws n letters from the bag.
func (b *Bag) Draw(n int) ([]rune, error) {
	if n > len(b.tiles) {
		return nil, fmt.Errorf("tried to draw %v letters, bag has %v",
			n, len(b.tiles))
	}
	drawn := make([]rune, n)
	copy(drawn, b.tiles[:n])
	b.tiles = b.tiles[n:]
	return drawn, nil
}

// Shuffle shuffles the bag.
func (b *Bag) Shuffle() {
	frand.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

// TilesRemaining returns how many letters are left in the bag.
func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}
