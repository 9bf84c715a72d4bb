package game

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
)

// answersPerRow is how many answer slots fit on one board line before
// wrapping.
const answersPerRow = 6

func formatCountdown(d int) string {
	return fmt.Sprintf("%d:%02d", d/60, d%60)
}

// Countdown renders a duration as m:ss, the way the board and the
// shell prompt show time remaining.
func Countdown(d time.Duration) string {
	return formatCountdown(int(d.Seconds()))
}

// ScrambleLine renders just the scramble row of the board, for quick
// feedback after a twist.
func (r *Round) ScrambleLine() string {
	return "  " + spacedUpper(r.scramble)
}

// ToDisplayText turns the current state of the round into a
// displayable string: the scramble, the clock, the score line, and the
// answer grid grouped by word length. Unfound answers are masked with
// underscores while the round is live and revealed in lower case once
// it is over.
func (r *Round) ToDisplayText() string {
	var sb strings.Builder

	sb.WriteString("\n  ")
	sb.WriteString(spacedUpper(r.scramble))
	if r.Timed() && !r.over {
		secs := int(r.TimeRemaining().Seconds())
		sb.WriteString(strings.Repeat(" ", 8))
		sb.WriteString(formatCountdown(secs) + " remaining")
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  Score: %d / %d", r.score, r.maxScore))
	sb.WriteString(fmt.Sprintf("   Words: %d of %d\n\n", len(r.found), len(r.answers)))

	byLength := lo.GroupBy(r.answers, func(w string) int {
		return utf8.RuneCountInString(w)
	})
	lengths := lo.Keys(byLength)
	sort.Ints(lengths)

	for _, n := range lengths {
		row := 0
		sb.WriteString(fmt.Sprintf("  %2d: ", n))
		for _, w := range byLength[n] {
			if row == answersPerRow {
				sb.WriteString("\n      ")
				row = 0
			}
			sb.WriteString(fmt.Sprintf("%-*s  ", n, r.answerSlot(w, n)))
			row++
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// answerSlot renders one cell of the answer grid.
func (r *Round) answerSlot(w string, n int) string {
	switch {
	case r.foundSet[w]:
		return strings.ToUpper(w)
	case r.over:
		return w
	default:
		return strings.Repeat("_", n)
	}
}
