package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/remolino/game"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))

	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{40, 10, 90, 70} {
		s.Push(v)
	}
	is.Equal(s.Min(), 10.0)
	is.Equal(s.Max(), 90.0)
	is.Equal(s.Last(), 70.0)
	is.Equal(s.Iterations(), 4)
}

func TestStandardError(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(v)
	}
	// With a z-value of 1 the standard error is stdev/sqrt(n).
	is.True(FuzzyEqual(s.StandardError(1), s.Stdev()/math.Sqrt(8)))

	empty := &Statistic{}
	is.Equal(empty.StandardError(ZVal(95)), 0.0)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959964))
	is.True(FuzzyEqual(ZVal(99), 2.575829))
}

func sampleSession() *SessionStats {
	ss := &SessionStats{}
	ss.AddRound(game.RoundSummary{
		Letters: "acot", Lexicon: "SMALL",
		Score: 100, MaxScore: 170, Found: 4, Total: 5,
		Seconds: 60, FoundLengths: []int{3, 3, 3, 4},
	})
	ss.AddRound(game.RoundSummary{
		Letters: "adgno", Lexicon: "SMALL",
		Score: 50, MaxScore: 200, Found: 2, Total: 5,
		Seconds: 45, FoundLengths: []int{3, 4},
	})
	return ss
}

func TestSessionStats(t *testing.T) {
	is := is.New(t)
	ss := sampleSession()
	is.Equal(ss.Rounds(), 2)
	is.Equal(ss.WordsFound(), 6)
	is.True(FuzzyEqual(ss.Score().Mean(), 75))
	is.True(FuzzyEqual(ss.CompletionRate(), 0.6))

	lo, hi := ss.ScoreCI(95)
	is.True(lo < hi)
	is.True(FuzzyEqual((lo+hi)/2, 75))
	// Scores 100 and 50 have a standard error of 25.
	is.True(FuzzyEqual(hi-lo, 2*ZVal(95)*25))
}

func TestSessionHistogram(t *testing.T) {
	is := is.New(t)

	var sb strings.Builder
	empty := &SessionStats{}
	is.NoErr(empty.WriteHistogram(&sb))
	is.Equal(sb.String(), "no words found yet\n")

	sb.Reset()
	ss := sampleSession()
	is.NoErr(ss.WriteHistogram(&sb))
	is.True(strings.Contains(sb.String(), "%"))
}

func TestSessionString(t *testing.T) {
	is := is.New(t)
	empty := &SessionStats{}
	is.Equal(empty.String(), "no rounds played yet")

	out := sampleSession().String()
	is.True(strings.Contains(out, "Rounds played: 2"))
	is.True(strings.Contains(out, "mean 75.0"))
	is.True(strings.Contains(out, "Completion rate: 60.0%"))
	is.True(strings.Contains(out, "Best round: 100; worst: 50"))
}
