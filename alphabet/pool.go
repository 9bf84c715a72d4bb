// Package alphabet deals with letters. A LetterPool is a multiset of
// case-normalized letters, the thing a round's guesses are spelled
// from.
package alphabet

import (
	"sort"
	"strings"
	"unicode"
)

// LetterPool is a multiset of letters. All letters are lower-cased at
// entry so lookups are case-insensitive.
type LetterPool struct {
	counts     map[rune]int
	numLetters int
}

// NewLetterPool creates an empty pool.
func NewLetterPool() *LetterPool {
	return &LetterPool{counts: make(map[rune]int)}
}

// PoolFromString creates a pool from the letters of the given string.
// Case is normalized; spaces are ignored so "t w i s t" and "twist"
// build the same pool.
func PoolFromString(letters string) *LetterPool {
	p := NewLetterPool()
	for _, r := range strings.ToLower(letters) {
		if r == ' ' || r == '\t' {
			continue
		}
		p.Add(r)
	}
	return p
}

// Add adds a single letter to the pool.
func (p *LetterPool) Add(r rune) {
	p.counts[normRune(r)]++
	p.numLetters++
}

// Has returns whether at least one of the letter is in the pool.
func (p *LetterPool) Has(r rune) bool {
	return p.counts[normRune(r)] > 0
}

// Take removes one instance of the letter from the pool. It returns
// false, leaving the pool alone, if the letter is not present.
func (p *LetterPool) Take(r rune) bool {
	n := normRune(r)
	if p.counts[n] == 0 {
		return false
	}
	p.counts[n]--
	if p.counts[n] == 0 {
		delete(p.counts, n)
	}
	p.numLetters--
	return true
}

// Count returns how many of the letter the pool holds.
func (p *LetterPool) Count(r rune) int {
	return p.counts[normRune(r)]
}

// NumLetters returns the total number of letters in the pool.
func (p *LetterPool) NumLetters() int {
	return p.numLetters
}

// Empty returns whether the pool has no letters.
func (p *LetterPool) Empty() bool {
	return p.numLetters == 0
}

// Copy returns an independent copy of the pool.
func (p *LetterPool) Copy() *LetterPool {
	c := &LetterPool{
		counts:     make(map[rune]int, len(p.counts)),
		numLetters: p.numLetters,
	}
	for r, n := range p.counts {
		c.counts[r] = n
	}
	return c
}

// CanSpell returns whether the word's letters form a sub-multiset of
// the pool. It is frequency-aware: a pool with a single t cannot spell
// "tt". The pool is never mutated. The empty word is trivially
// spellable.
func (p *LetterPool) CanSpell(word string) bool {
	needed := make(map[rune]int)
	for _, r := range strings.ToLower(word) {
		needed[r]++
		if needed[r] > p.counts[r] {
			return false
		}
	}
	return true
}

// Letters returns the pool's letters in sorted order.
func (p *LetterPool) Letters() []rune {
	letters := make([]rune, 0, p.numLetters)
	for r, n := range p.counts {
		for i := 0; i < n; i++ {
			letters = append(letters, r)
		}
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}

func (p *LetterPool) String() string {
	return string(p.Letters())
}

// Alphagram returns the word's letters, case-normalized, in sorted
// order. Two words are anagrams of each other iff their alphagrams are
// equal.
func Alphagram(word string) string {
	runes := []rune(strings.ToLower(word))
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

func normRune(r rune) rune {
	return unicode.ToLower(r)
}
