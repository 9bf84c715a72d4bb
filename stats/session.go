package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/remolino/game"
)

// histogramBins is how many buckets the found-word-length histogram
// uses; word lengths rarely span more than this.
const histogramBins = 10

// SessionStats aggregates the rounds played in one session (or one
// autoplay batch).
type SessionStats struct {
	score      Statistic
	found      Statistic
	completion Statistic

	// flat sample of the lengths of every found word, for the
	// histogram.
	wordLengths []float64
}

// AddRound folds a finished round into the session.
func (ss *SessionStats) AddRound(s game.RoundSummary) {
	ss.score.Push(float64(s.Score))
	ss.found.Push(float64(s.Found))
	if s.Total > 0 {
		ss.completion.Push(float64(s.Found) / float64(s.Total))
	} else {
		ss.completion.Push(0)
	}
	for _, n := range s.FoundLengths {
		ss.wordLengths = append(ss.wordLengths, float64(n))
	}
}

// Rounds returns how many rounds have been added.
func (ss *SessionStats) Rounds() int {
	return ss.score.Iterations()
}

// WordsFound returns the total found words across all rounds.
func (ss *SessionStats) WordsFound() int {
	return len(ss.wordLengths)
}

// Score returns the running score statistic.
func (ss *SessionStats) Score() *Statistic {
	return &ss.score
}

// CompletionRate returns the mean fraction of answers found per round.
func (ss *SessionStats) CompletionRate() float64 {
	return ss.completion.Mean()
}

// ScoreCI returns a normal-approximation confidence interval for the
// mean round score. level is a percentage, e.g. 95.
func (ss *SessionStats) ScoreCI(level float64) (float64, float64) {
	se := ss.score.StandardError(ZVal(level))
	return ss.score.Mean() - se, ss.score.Mean() + se
}

// WriteHistogram writes a histogram of found-word lengths to w.
func (ss *SessionStats) WriteHistogram(w io.Writer) error {
	if len(ss.wordLengths) == 0 {
		_, err := io.WriteString(w, "no words found yet\n")
		return err
	}
	hist := histogram.Hist(histogramBins, ss.wordLengths)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

// String renders the session summary the `stats` command prints.
func (ss *SessionStats) String() string {
	if ss.Rounds() == 0 {
		return "no rounds played yet"
	}
	var sb strings.Builder
	lo95, hi95 := ss.ScoreCI(95)
	fmt.Fprintf(&sb, "Rounds played: %d\n", ss.Rounds())
	fmt.Fprintf(&sb, "Score: mean %.1f, stdev %.1f (95%% CI %.1f to %.1f)\n",
		ss.score.Mean(), ss.score.Stdev(), lo95, hi95)
	fmt.Fprintf(&sb, "Best round: %.0f; worst: %.0f\n", ss.score.Max(), ss.score.Min())
	fmt.Fprintf(&sb, "Words found per round: mean %.1f\n", ss.found.Mean())
	fmt.Fprintf(&sb, "Completion rate: %.1f%%\n", ss.completion.Mean()*100)
	sb.WriteString("Found word lengths:\n")
	if err := ss.WriteHistogram(&sb); err != nil {
		fmt.Fprintf(&sb, "could not render histogram: %v\n", err)
	}
	return sb.String()
}
