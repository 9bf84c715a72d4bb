package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBag(t *testing.T) {
	ld := EnglishLetterDistribution()
	bag := ld.MakeBag()
	assert.Equal(t, 98, bag.TilesRemaining())

	counts := map[rune]int{}
	for bag.TilesRemaining() > 0 {
		drawn, err := bag.Draw(1)
		assert.NoError(t, err)
		counts[drawn[0]]++
	}
	// Drawing the whole bag recovers the distribution exactly.
	assert.Equal(t, 12, counts['e'])
	assert.Equal(t, 9, counts['a'])
	assert.Equal(t, 1, counts['q'])
	assert.Equal(t, 1, counts['z'])
}

func TestDraw(t *testing.T) {
	ld := EnglishLetterDistribution()
	bag := ld.MakeBag()

	letters, err := bag.Draw(7)
	assert.NoError(t, err)
	assert.Equal(t, 7, len(letters))
	assert.Equal(t, 91, bag.TilesRemaining())
}

func TestDrawTooMany(t *testing.T) {
	ld := EnglishLetterDistribution()
	bag := ld.MakeBag()
	_, err := bag.Draw(99)
	assert.Error(t, err)
	assert.Equal(t, 98, bag.TilesRemaining())

	drawn, err := bag.Draw(98)
	assert.NoError(t, err)
	assert.Equal(t, 98, len(drawn))
	_, err = bag.Draw(1)
	assert.Error(t, err)
}

func TestNamedLetterDistribution(t *testing.T) {
	ld, err := NamedLetterDistribution("english")
	assert.NoError(t, err)
	assert.Equal(t, 98, ld.NumLetters())

	ld, err = NamedLetterDistribution("")
	assert.NoError(t, err)
	assert.Equal(t, 98, ld.NumLetters())

	ld, err = NamedLetterDistribution("Spanish")
	assert.NoError(t, err)
	assert.Equal(t, 95, ld.NumLetters())

	_, err = NamedLetterDistribution("klingon")
	assert.Error(t, err)
}
