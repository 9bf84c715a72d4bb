// Package game holds the state of a single word-twist round: the
// scramble, its letter pool, the answers still out there, the words
// found so far, the score, and the clock. All of the round rules live
// here; the pure letter/dictionary checks live in anagrammer.
package game

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/remolino/alphabet"
	"github.com/domino14/remolino/anagrammer"
	"github.com/domino14/remolino/lexicon"
)

// PointsPerLetter is the score awarded per letter of a found word.
const PointsPerLetter = 10

// Reasons a guess is rejected. The shell turns these into player
// feedback; callers that care can errors.Is against them.
var (
	ErrRoundOver    = errors.New("the round is over")
	ErrTooShort     = errors.New("word is too short")
	ErrNotInPool    = errors.New("word cannot be formed from the letters")
	ErrNotAWord     = errors.New("word is not in the lexicon")
	ErrAlreadyFound = errors.New("word was already found")
)

// RoundOptions configure a new round.
type RoundOptions struct {
	// MinWordLength is the shortest creditable word.
	MinWordLength int
	// Duration is the countdown; 0 plays an untimed round.
	Duration time.Duration
	// Seed, when non-empty, makes the display shuffles deterministic.
	// Tests use it; interactive play leaves it empty.
	Seed []byte
}

// A Round is one playable scramble. It is not safe for concurrent use;
// the shell drives it from a single goroutine.
type Round struct {
	dict     *lexicon.Dictionary
	scramble []rune
	pool     *alphabet.LetterPool

	answers   []string
	answerSet map[string]bool
	found     []string
	foundSet  map[string]bool

	score     int
	maxScore  int
	minLength int

	started  time.Time
	duration time.Duration
	over     bool
	endedAt  time.Time

	rng *frand.RNG
}

func newRNG(seed []byte) *frand.RNG {
	if len(seed) == 0 {
		return frand.New()
	}
	var fixed [32]byte
	copy(fixed[:], seed)
	return frand.NewCustom(fixed[:], 1024, 12)
}

// NewRound starts a round over the given letters. The answer set is
// every dictionary word of at least opts.MinWordLength formable from
// the letters; a round with no answers is over before it begins.
func NewRound(dict *lexicon.Dictionary, letters string, opts RoundOptions) *Round {
	answers := lo.Filter(anagrammer.Anagram(letters, dict, anagrammer.ModeBuild),
		func(w string, _ int) bool {
			return utf8.RuneCountInString(w) >= opts.MinWordLength
		})
	r := &Round{
		dict:      dict,
		scramble:  []rune(lexicon.Normalize(letters)),
		pool:      alphabet.PoolFromString(letters),
		answers:   answers,
		answerSet: map[string]bool{},
		foundSet:  map[string]bool{},
		minLength: opts.MinWordLength,
		started:   time.Now(),
		duration:  opts.Duration,
		rng:       newRNG(opts.Seed),
	}
	for _, a := range answers {
		r.answerSet[a] = true
		r.maxScore += PointsPerLetter * utf8.RuneCountInString(a)
	}
	if len(r.answers) == 0 {
		r.end()
	}
	r.Shuffle()
	return r
}

// SubmitGuess runs a raw guess through the round rules and returns the
// points awarded. The clock is polled first; an expired or ended round
// takes no further guesses. A rejected guess leaves the round
// untouched, so resubmitting a found word can never score twice.
func (r *Round) SubmitGuess(raw string) (int, error) {
	if r.Over() {
		return 0, ErrRoundOver
	}
	w := lexicon.Normalize(raw)
	if utf8.RuneCountInString(w) < r.minLength {
		return 0, ErrTooShort
	}
	if !r.pool.CanSpell(w) {
		return 0, ErrNotInPool
	}
	if !r.dict.HasWord(w) {
		return 0, ErrNotAWord
	}
	if r.foundSet[w] {
		return 0, ErrAlreadyFound
	}
	r.found = append(r.found, w)
	r.foundSet[w] = true
	points := PointsPerLetter * utf8.RuneCountInString(w)
	r.score += points
	if len(r.found) == len(r.answers) {
		r.end()
	}
	return points, nil
}

// Shuffle reorders the displayed scramble. The pool, answers, found
// words and score are untouched; twisting the letters is purely a
// visual aid.
func (r *Round) Shuffle() {
	r.rng.Shuffle(len(r.scramble), func(i, j int) {
		r.scramble[i], r.scramble[j] = r.scramble[j], r.scramble[i]
	})
}

// End finishes the round early. Used by `solve` and by quitting a
// round; finding every answer ends the round on its own.
func (r *Round) End() {
	if !r.over {
		r.end()
	}
}

func (r *Round) end() {
	r.over = true
	r.endedAt = time.Now()
}

// Over polls the clock: a timed round whose countdown has elapsed is
// over, observed here rather than by any timer callback.
func (r *Round) Over() bool {
	if r.over {
		return true
	}
	if r.duration > 0 && time.Since(r.started) >= r.duration {
		r.over = true
		r.endedAt = r.started.Add(r.duration)
	}
	return r.over
}

// Timed returns whether this round runs against a countdown.
func (r *Round) Timed() bool { return r.duration > 0 }

// TimeRemaining returns how much of the countdown is left, never
// negative. Untimed rounds always report zero.
func (r *Round) TimeRemaining() time.Duration {
	if r.duration == 0 {
		return 0
	}
	rem := r.duration - time.Since(r.started)
	if rem < 0 || r.over {
		return 0
	}
	return rem
}

// Scramble returns the letters in their current display order.
func (r *Round) Scramble() string { return string(r.scramble) }

// Pool returns the round's letter pool. Callers must not mutate it.
func (r *Round) Pool() *alphabet.LetterPool { return r.pool }

// LexiconName returns the name of the dictionary in play.
func (r *Round) LexiconName() string { return r.dict.Name() }

// MinWordLength returns the shortest creditable word length.
func (r *Round) MinWordLength() int { return r.minLength }

// Found returns the credited words in the order they were found.
func (r *Round) Found() []string { return r.found }

// FoundCount returns how many answers have been found.
func (r *Round) FoundCount() int { return len(r.found) }

// HasFound returns whether the word has already been credited.
func (r *Round) HasFound(word string) bool {
	return r.foundSet[lexicon.Normalize(word)]
}

// Score returns the points scored so far.
func (r *Round) Score() int { return r.score }

// MaxScore returns the score of a perfect round.
func (r *Round) MaxScore() int { return r.maxScore }

// Answers returns every answer, sorted by length then alphabetically.
// The returned slice is shared; do not modify it.
func (r *Round) Answers() []string { return r.answers }

// TotalAnswers returns how many answers the scramble has.
func (r *Round) TotalAnswers() int { return len(r.answers) }

// Remaining returns the answers not yet found, in answer order.
func (r *Round) Remaining() []string {
	return lo.Filter(r.answers, func(w string, _ int) bool {
		return !r.foundSet[w]
	})
}

// Complete returns whether every answer has been found.
func (r *Round) Complete() bool {
	return len(r.answers) > 0 && len(r.found) == len(r.answers)
}

// DurationPlayed returns how long the round ran, up to now for a live
// round and up to the moment it ended otherwise.
func (r *Round) DurationPlayed() time.Duration {
	if r.over {
		return r.endedAt.Sub(r.started)
	}
	return time.Since(r.started)
}

// A RoundSummary is the record of a finished (or abandoned) round.
// Session statistics and the history store consume these.
type RoundSummary struct {
	Letters      string
	Lexicon      string
	Score        int
	MaxScore     int
	Found        int
	Total        int
	Seconds      float64
	FoundLengths []int
}

// Summary snapshots the round for stats and persistence. The letters
// are reported alphabetized so two rounds over the same pool summarize
// identically no matter the display shuffle.
func (r *Round) Summary() RoundSummary {
	return RoundSummary{
		Letters:  alphabet.Alphagram(string(r.scramble)),
		Lexicon:  r.dict.Name(),
		Score:    r.score,
		MaxScore: r.maxScore,
		Found:    len(r.found),
		Total:    len(r.answers),
		Seconds:  r.DurationPlayed().Seconds(),
		FoundLengths: lo.Map(r.found, func(w string, _ int) int {
			return utf8.RuneCountInString(w)
		}),
	}
}

// spacedUpper renders letters the way the scramble is shown on the
// board: upper-cased, one space between letters.
func spacedUpper(runes []rune) string {
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = strings.ToUpper(string(r))
	}
	return strings.Join(parts, " ")
}
