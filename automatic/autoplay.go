// Package automatic plays rounds without a human, for profiling score
// distributions and exercising the engine at scale.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/remolino/anagrammer"
	"github.com/domino14/remolino/config"
	"github.com/domino14/remolino/game"
	"github.com/domino14/remolino/lexicon"
	"github.com/domino14/remolino/stats"
)

var (
	RoundCounter *expvar.Int
	IsPlaying    *expvar.Int
)

func init() {
	RoundCounter = expvar.NewInt("roundCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// AutoplayArgs parameterize a batch of self-played rounds.
type AutoplayArgs struct {
	Rounds  int
	Workers int
	// Skill is the probability each answer gets found. 1 plays
	// perfectly.
	Skill         float64
	LetterCount   int
	MinWordLength int
	// LogFile, when set, receives one YAML document per round.
	LogFile string
}

// RoundLog is the YAML record autoplay writes per round.
type RoundLog struct {
	Letters  string   `yaml:"letters"`
	Lexicon  string   `yaml:"lexicon"`
	Score    int      `yaml:"score"`
	MaxScore int      `yaml:"max_score"`
	Found    int      `yaml:"found"`
	Total    int      `yaml:"total"`
	Words    []string `yaml:"words,omitempty"`
}

// Playout plays args.Rounds rounds and returns their aggregated
// statistics. Rounds run on args.Workers goroutines. Cancelling the
// context stops the batch early; the partial statistics are still
// returned.
func Playout(ctx context.Context, cfg *config.Config, dict *lexicon.Dictionary,
	args AutoplayArgs) (*stats.SessionStats, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("rounds are already being played, please wait till complete")
	}
	if args.Rounds <= 0 {
		return nil, fmt.Errorf("need a positive number of rounds, not %v", args.Rounds)
	}
	if args.Skill < 0 || args.Skill > 1 {
		return nil, fmt.Errorf("skill must be between 0 and 1, not %v", args.Skill)
	}
	if args.Workers <= 0 {
		args.Workers = max(1, runtime.NumCPU()-1)
	}
	if args.LetterCount <= 0 {
		args.LetterCount = cfg.GetInt(config.ConfigLetterCount)
	}
	if args.MinWordLength <= 0 {
		args.MinWordLength = cfg.GetInt(config.ConfigMinWordLength)
	}
	log.Debug().Msgf("Starting %v rounds, %v workers", args.Rounds, args.Workers)

	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	var logfile *os.File
	logChan := make(chan []byte, 100)
	writer := errgroup.Group{}
	if args.LogFile != "" {
		var err error
		logfile, err = os.Create(args.LogFile)
		if err != nil {
			return nil, err
		}
		writer.Go(func() error {
			// Keep draining even if a write fails so the workers
			// never block on a dead writer.
			for b := range logChan {
				if _, err := logfile.Write(b); err != nil {
					log.Err(err).Msg("writing-round-log")
				}
			}
			return logfile.Close()
		})
	}

	sess := &stats.SessionStats{}
	summaries := make(chan game.RoundSummary, 100)
	collector := errgroup.Group{}
	collector.Go(func() error {
		for s := range summaries {
			sess.AddRound(s)
		}
		return nil
	})

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int, args.Workers)
	go func() {
		defer close(jobs)
		for i := 0; i < args.Rounds; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Debug().Msg("stopping the job feeder early")
				return
			}
		}
	}()

	tstart := time.Now()
	for t := 0; t < args.Workers; t++ {
		g.Go(func() error {
			rng := frand.New()
			for range jobs {
				summary, rec, err := playRound(gctx, rng, dict, args)
				if err != nil {
					return err
				}
				summaries <- summary
				RoundCounter.Add(1)
				if logfile != nil {
					b, err := yaml.Marshal(rec)
					if err != nil {
						return err
					}
					logChan <- append([]byte("---\n"), b...)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	close(summaries)
	collector.Wait()
	close(logChan)
	if werr := writer.Wait(); werr != nil && err == nil {
		err = werr
	}
	log.Debug().Msgf("played %v rounds in %v", sess.Rounds(), time.Since(tstart))

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// A stopped batch is not an error; report what we have.
		return sess, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// playRound generates a challenge and plays it through the real guess
// path, finding each answer with probability args.Skill.
func playRound(ctx context.Context, rng *frand.RNG, dict *lexicon.Dictionary,
	args AutoplayArgs) (game.RoundSummary, *RoundLog, error) {

	challenge, err := anagrammer.GenerateChallenge(ctx, dict, &anagrammer.ChallengeArgs{
		WordLength:    args.LetterCount,
		MinWordLength: args.MinWordLength,
		MinSolutions:  1,
	})
	if err != nil {
		return game.RoundSummary{}, nil, err
	}
	round := game.NewRound(dict, challenge.Scramble, game.RoundOptions{
		MinWordLength: args.MinWordLength,
	})

	answers := append([]string(nil), round.Answers()...)
	rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	for _, w := range answers {
		if rng.Float64() >= args.Skill {
			continue
		}
		if _, err := round.SubmitGuess(w); err != nil {
			return game.RoundSummary{}, nil, fmt.Errorf("answer %q rejected: %w", w, err)
		}
	}
	round.End()

	summary := round.Summary()
	return summary, &RoundLog{
		Letters:  summary.Letters,
		Lexicon:  summary.Lexicon,
		Score:    summary.Score,
		MaxScore: summary.MaxScore,
		Found:    summary.Found,
		Total:    summary.Total,
		Words:    round.Found(),
	}, nil
}
