// Package anagrammer checks guesses and finds every word a set of
// letters can spell.
package anagrammer

import (
	"sort"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/domino14/remolino/alphabet"
	"github.com/domino14/remolino/lexicon"
)

// Mode selects which words Anagram returns.
type Mode uint8

const (
	// ModeBuild accepts any word formable from a subset of the letters.
	ModeBuild Mode = iota
	// ModeExact accepts only words that use every letter.
	ModeExact
)

// Validate reports whether a guess is good against a letter pool and a
// dictionary: the normalized guess must be spellable from the pool and
// must be a dictionary word. It has no opinion on word length or
// repeated guesses; those are round rules and live with the round.
func Validate(pool *alphabet.LetterPool, dict *lexicon.Dictionary, guess string) bool {
	w := lexicon.Normalize(guess)
	return pool.CanSpell(w) && dict.HasWord(w)
}

// Anagram returns every dictionary word formable from the given
// letters, sorted by length and then alphabetically.
func Anagram(letters string, dict *lexicon.Dictionary, mode Mode) []string {
	pool := alphabet.PoolFromString(letters)
	answers := lo.Filter(dict.Words(), func(w string, _ int) bool {
		if mode == ModeExact && utf8.RuneCountInString(w) != pool.NumLetters() {
			return false
		}
		return pool.CanSpell(w)
	})
	sortWords(answers)
	return answers
}

// sortWords orders words by length then alphabetically, the order the
// answer board displays them in.
func sortWords(words []string) {
	sort.Slice(words, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(words[i]), utf8.RuneCountInString(words[j])
		if li != lj {
			return li < lj
		}
		return words[i] < words[j]
	})
}
