package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/remolino/lexicon"
)

var testSeed = []byte("remolino-round-test-seed")

func testDictionary(t *testing.T) *lexicon.Dictionary {
	t.Helper()
	words := "act\ncat\nat\nta\ntact\ncot\ncoat\ntaco\ndog\ngod\ndo\ngo\n"
	d, err := lexicon.ReadDictionary("SMALL", strings.NewReader(words))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func newTestRound(t *testing.T, letters string, minLength int) *Round {
	t.Helper()
	return NewRound(testDictionary(t), letters, RoundOptions{
		MinWordLength: minLength,
		Seed:          testSeed,
	})
}

func TestNewRoundAnswers(t *testing.T) {
	r := newTestRound(t, "octa", 2)
	// at ta act cat cot coat taco
	assert.Equal(t, []string{"at", "ta", "act", "cat", "cot", "coat", "taco"}, r.Answers())
	assert.Equal(t, 7, r.TotalAnswers())
	// 2+2+3+3+3+4+4 letters at 10 points each.
	assert.Equal(t, 210, r.MaxScore())
	assert.False(t, r.Over())
	assert.Equal(t, 0, r.Score())
}

func TestNewRoundMinWordLength(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	assert.Equal(t, []string{"act", "cat", "cot", "coat", "taco"}, r.Answers())
}

type guesstest struct {
	guess  string
	points int
	err    error
}

func TestSubmitGuess(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	testcases := []guesstest{
		{"cat", 30, nil},
		{"act", 30, nil},
		{"ACT", 0, ErrAlreadyFound},
		{" cat ", 0, ErrAlreadyFound},
		{"at", 0, ErrTooShort},
		{"dog", 0, ErrNotInPool},
		{"cats", 0, ErrNotInPool},
		{"oct", 0, ErrNotAWord},
		{"taco", 40, nil},
	}
	for _, tc := range testcases {
		points, err := r.SubmitGuess(tc.guess)
		assert.Equal(t, tc.points, points, "guess: %q", tc.guess)
		assert.ErrorIs(t, err, tc.err, "guess: %q", tc.guess)
	}
	assert.Equal(t, 100, r.Score())
	assert.Equal(t, []string{"cat", "act", "taco"}, r.Found())
}

func TestSubmitGuessIdempotentScore(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	points, err := r.SubmitGuess("taco")
	assert.NoError(t, err)
	assert.Equal(t, 40, points)

	points, err = r.SubmitGuess("taco")
	assert.ErrorIs(t, err, ErrAlreadyFound)
	assert.Equal(t, 0, points)
	assert.Equal(t, 40, r.Score())
	assert.Equal(t, 1, r.FoundCount())
}

func TestFoundPreservesOrder(t *testing.T) {
	r := newTestRound(t, "octa", 2)
	for _, w := range []string{"taco", "at", "cot"} {
		_, err := r.SubmitGuess(w)
		assert.NoError(t, err)
	}
	assert.Equal(t, []string{"taco", "at", "cot"}, r.Found())
	assert.Equal(t, []string{"ta", "act", "cat", "coat"}, r.Remaining())
}

func TestWinEndsRound(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	for _, w := range []string{"act", "cat", "cot", "coat"} {
		_, err := r.SubmitGuess(w)
		assert.NoError(t, err)
		assert.False(t, r.Over())
	}
	points, err := r.SubmitGuess("taco")
	assert.NoError(t, err)
	assert.Equal(t, 40, points)
	assert.True(t, r.Over())
	assert.True(t, r.Complete())
	assert.Equal(t, r.MaxScore(), r.Score())

	_, err = r.SubmitGuess("act")
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestShuffleLeavesStateAlone(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	_, err := r.SubmitGuess("cat")
	assert.NoError(t, err)

	before := r.Scramble()
	score := r.Score()
	found := append([]string{}, r.Found()...)

	// Shuffle until the display order actually changes, then check
	// nothing else did.
	changed := false
	for i := 0; i < 50; i++ {
		r.Shuffle()
		if r.Scramble() != before {
			changed = true
			break
		}
	}
	assert.True(t, changed)
	assert.Equal(t, score, r.Score())
	assert.Equal(t, found, r.Found())
	assert.True(t, r.Pool().CanSpell("taco"))
	assert.Equal(t, 4, r.Pool().NumLetters())
}

func TestEndStopsGuesses(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	r.End()
	assert.True(t, r.Over())
	_, err := r.SubmitGuess("cat")
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.False(t, r.Complete())
}

func TestTimedRoundExpires(t *testing.T) {
	r := NewRound(testDictionary(t), "octa", RoundOptions{
		MinWordLength: 3,
		Duration:      10 * time.Millisecond,
		Seed:          testSeed,
	})
	assert.True(t, r.Timed())
	assert.False(t, r.Over())
	time.Sleep(20 * time.Millisecond)
	// Expiry is only observed when the clock is polled.
	_, err := r.SubmitGuess("cat")
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.Equal(t, time.Duration(0), r.TimeRemaining())
}

func TestUntimedRound(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	assert.False(t, r.Timed())
	assert.Equal(t, time.Duration(0), r.TimeRemaining())
}

func TestEmptyDictionaryRound(t *testing.T) {
	r := NewRound(lexicon.NewDictionary("EMPTY"), "octa", RoundOptions{
		MinWordLength: 3,
		Seed:          testSeed,
	})
	assert.True(t, r.Over())
	assert.Equal(t, 0, r.TotalAnswers())
	_, err := r.SubmitGuess("cat")
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestUnicodeLettersCountAsOne(t *testing.T) {
	d, err := lexicon.ReadDictionary("ES", strings.NewReader("ñu\nuña\n"))
	assert.NoError(t, err)
	r := NewRound(d, "añu", RoundOptions{MinWordLength: 2, Seed: testSeed})
	points, err := r.SubmitGuess("ñu")
	assert.NoError(t, err)
	assert.Equal(t, 20, points)
	points, err = r.SubmitGuess("uña")
	assert.NoError(t, err)
	assert.Equal(t, 30, points)
}

func TestSummary(t *testing.T) {
	r := newTestRound(t, "octa", 3)
	_, err := r.SubmitGuess("cat")
	assert.NoError(t, err)
	_, err = r.SubmitGuess("coat")
	assert.NoError(t, err)
	r.End()

	s := r.Summary()
	assert.Equal(t, "acot", s.Letters)
	assert.Equal(t, "SMALL", s.Lexicon)
	assert.Equal(t, 70, s.Score)
	assert.Equal(t, 170, s.MaxScore)
	assert.Equal(t, 2, s.Found)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, []int{3, 4}, s.FoundLengths)
	assert.GreaterOrEqual(t, s.Seconds, 0.0)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrRoundOver, ErrTooShort, ErrNotInPool, ErrNotAWord, ErrAlreadyFound}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b))
			}
		}
	}
}
