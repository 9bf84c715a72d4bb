package alphabet

import (
	"fmt"
	"strings"
)

// LetterDistribution describes how often each letter appears in a
// language's tile set. Random-letter rounds draw scrambles from it
// instead of from a dictionary word.
type LetterDistribution struct {
	distribution map[rune]uint8
	numLetters   int
}

func makeDistribution(dist map[rune]uint8) LetterDistribution {
	n := 0
	for _, ct := range dist {
		n += int(ct)
	}
	return LetterDistribution{distribution: dist, numLetters: n}
}

// EnglishLetterDistribution returns the standard English letter
// frequencies, sans blanks.
func EnglishLetterDistribution() LetterDistribution {
	return makeDistribution(map[rune]uint8{
		'a': 9, 'b': 2, 'c': 2, 'd': 4, 'e': 12, 'f': 2, 'g': 3, 'h': 2,
		'i': 9, 'j': 1, 'k': 1, 'l': 4, 'm': 2, 'n': 6, 'o': 8, 'p': 2,
		'q': 1, 'r': 6, 's': 4, 't': 6, 'u': 4, 'v': 2, 'w': 2, 'x': 1,
		'y': 2, 'z': 1,
	})
}

// SpanishLetterDistribution returns the Spanish letter frequencies,
// sans blanks and digraph tiles.
func SpanishLetterDistribution() LetterDistribution {
	return makeDistribution(map[rune]uint8{
		'a': 12, 'b': 2, 'c': 4, 'd': 5, 'e': 12, 'f': 1, 'g': 2, 'h': 2,
		'i': 6, 'j': 1, 'l': 4, 'm': 2, 'n': 5, 'ñ': 1, 'o': 9, 'p': 2,
		'q': 1, 'r': 5, 's': 6, 't': 4, 'u': 5, 'v': 1, 'x': 1, 'y': 1,
		'z': 1,
	})
}

// NamedLetterDistribution looks a distribution up by name.
func NamedLetterDistribution(name string) (LetterDistribution, error) {
	switch strings.ToLower(name) {
	case "", "english":
		return EnglishLetterDistribution(), nil
	case "spanish":
		return SpanishLetterDistribution(), nil
	}
	return LetterDistribution{}, fmt.Errorf("unknown letter distribution %v", name)
}

// NumLetters returns the total tile count of the distribution.
func (ld LetterDistribution) NumLetters() int {
	return ld.numLetters
}
