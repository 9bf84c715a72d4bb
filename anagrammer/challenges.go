package anagrammer

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/remolino/alphabet"
	"github.com/domino14/remolino/lexicon"
)

// maxTries bounds how long we hunt for a scramble whose answer count
// lands inside the requested window.
const maxTries = 10000

// ChallengeArgs constrain a generated round.
type ChallengeArgs struct {
	// WordLength is the scramble length. 0 picks any dictionary word of
	// at least MinWordLength letters.
	WordLength int
	// MinWordLength is the shortest word counted as an answer.
	MinWordLength int
	// MinSolutions and MaxSolutions bound the answer count.
	// MaxSolutions 0 means unbounded.
	MinSolutions int
	MaxSolutions int
	// RandomRack draws the letters from a letter distribution instead
	// of scrambling a dictionary word. Such racks are not guaranteed to
	// anagram to anything, which is why the window retries.
	RandomRack bool
	// Distribution names the letter distribution for random racks;
	// empty means english.
	Distribution string
}

// A Challenge is a playable scramble with its full answer set.
type Challenge struct {
	Scramble string
	// BaseWord is the word the scramble was made from; empty for
	// random racks.
	BaseWord string
	Answers  []string
}

// GenerateChallenge picks scrambles at random until one's
// buildable-answer count falls inside the args window.
func GenerateChallenge(ctx context.Context, dict *lexicon.Dictionary, args *ChallengeArgs) (*Challenge, error) {
	if args.RandomRack {
		return generateRackChallenge(ctx, dict, args)
	}
	candidates := lo.Filter(dict.Words(), func(w string, _ int) bool {
		n := utf8.RuneCountInString(w)
		if args.WordLength > 0 {
			return n == args.WordLength
		}
		return n >= args.MinWordLength
	})
	if len(candidates) == 0 {
		return nil, fmt.Errorf("lexicon %v has no usable words of length %v",
			dict.Name(), args.WordLength)
	}
	for tries := 1; tries <= maxTries; tries++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		base := candidates[frand.Intn(len(candidates))]
		answers := answersFor(base, dict, args)
		if !withinWindow(len(answers), args) {
			continue
		}
		log.Debug().Int("tries", tries).Str("base", base).
			Int("answers", len(answers)).Msg("generated-challenge")
		return &Challenge{Scramble: shuffled(base), BaseWord: base, Answers: answers}, nil
	}
	return nil, giveUpError(args)
}

func generateRackChallenge(ctx context.Context, dict *lexicon.Dictionary, args *ChallengeArgs) (*Challenge, error) {
	if args.WordLength <= 0 {
		return nil, fmt.Errorf("random racks need a letter count")
	}
	distName := args.Distribution
	if distName == "" {
		distName = "english"
	}
	dist, err := alphabet.NamedLetterDistribution(distName)
	if err != nil {
		return nil, err
	}
	for tries := 1; tries <= maxTries; tries++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		bag := dist.MakeBag()
		letters, err := bag.Draw(args.WordLength)
		if err != nil {
			return nil, err
		}
		rack := string(letters)
		answers := answersFor(rack, dict, args)
		if !withinWindow(len(answers), args) {
			continue
		}
		log.Debug().Int("tries", tries).Str("rack", rack).
			Int("answers", len(answers)).Msg("generated-rack-challenge")
		return &Challenge{Scramble: rack, Answers: answers}, nil
	}
	return nil, giveUpError(args)
}

// answersFor is the full buildable answer set for a scramble, with
// too-short words dropped.
func answersFor(letters string, dict *lexicon.Dictionary, args *ChallengeArgs) []string {
	return lo.Filter(Anagram(letters, dict, ModeBuild), func(w string, _ int) bool {
		return utf8.RuneCountInString(w) >= args.MinWordLength
	})
}

func withinWindow(n int, args *ChallengeArgs) bool {
	if n < args.MinSolutions {
		return false
	}
	return args.MaxSolutions == 0 || n <= args.MaxSolutions
}

func giveUpError(args *ChallengeArgs) error {
	return fmt.Errorf("gave up after %v tries; no scramble had %v to %v answers",
		maxTries, args.MinSolutions, args.MaxSolutions)
}

// shuffled returns the word's letters in random order.
func shuffled(word string) string {
	runes := []rune(word)
	frand.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
	return string(runes)
}
