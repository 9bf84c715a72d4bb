package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/domino14/remolino/anagrammer"
	"github.com/domino14/remolino/automatic"
	"github.com/domino14/remolino/game"
	"github.com/domino14/remolino/lexicon"
	"github.com/domino14/remolino/store"
)

const defaultAutoplayRounds = 100

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) StringArray(key string) []string {
	return c[key]
}

func msg(message string) *Response {
	return &Response{message: message}
}

// newRound generates and starts a round. Options override the session
// settings for this round only; -letters skips generation entirely and
// plays the given letter set, and -rack true draws the letters from a
// letter distribution instead of scrambling a dictionary word.
func (sc *ShellController) newRound(cmd *shellcmd) (*Response, error) {
	length, err := cmd.options.IntDefault("length", sc.options.LetterCount)
	if err != nil {
		return nil, err
	}
	minLength, err := cmd.options.IntDefault("minlength", sc.options.MinWordLength)
	if err != nil {
		return nil, err
	}
	minSolutions, err := cmd.options.IntDefault("minsolutions", sc.options.MinSolutions)
	if err != nil {
		return nil, err
	}
	maxSolutions, err := cmd.options.IntDefault("maxsolutions", sc.options.MaxSolutions)
	if err != nil {
		return nil, err
	}
	duration := sc.options.Duration
	if d := cmd.options.String("duration"); d != "" {
		override := GameOptions{MinSolutions: 1}
		if err := override.SetDuration(d); err != nil {
			return nil, err
		}
		duration = override.Duration
	}

	letters := cmd.options.String("letters")
	if letters == "" {
		challenge, err := anagrammer.GenerateChallenge(context.Background(), sc.dict,
			&anagrammer.ChallengeArgs{
				WordLength:    length,
				MinWordLength: minLength,
				MinSolutions:  minSolutions,
				MaxSolutions:  maxSolutions,
				RandomRack:    cmd.options.Bool("rack"),
				Distribution:  cmd.options.String("dist"),
			})
		if err != nil {
			return nil, err
		}
		letters = challenge.Scramble
	}

	// Abandoning a live round still records it.
	if sc.round != nil && !sc.round.Over() {
		sc.round.End()
	}
	sc.finishRound()

	sc.round = game.NewRound(sc.dict, letters, game.RoundOptions{
		MinWordLength: minLength,
		Duration:      duration,
	})
	sc.recorded = false
	if sc.round.TotalAnswers() == 0 {
		return msg("Those letters spell nothing in " + sc.dict.Name() + "; round over before it began."), nil
	}
	return msg(sc.round.ToDisplayText()), nil
}

func (sc *ShellController) guess(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("guess one word at a time")
	}
	word := cmd.args[0]
	points, err := sc.round.SubmitGuess(word)
	sc.finishRound()
	if err != nil {
		switch {
		case errors.Is(err, game.ErrRoundOver):
			return msg("The round is over. `new` deals another."), nil
		case errors.Is(err, game.ErrTooShort):
			return msg(fmt.Sprintf("%q is too short; words need %d letters or more.",
				word, sc.round.MinWordLength())), nil
		case errors.Is(err, game.ErrNotInPool):
			return msg(fmt.Sprintf("%q is not in the letters.", word)), nil
		case errors.Is(err, game.ErrNotAWord):
			return msg(fmt.Sprintf("%q is not a word in %s.", word, sc.round.LexiconName())), nil
		case errors.Is(err, game.ErrAlreadyFound):
			return msg(fmt.Sprintf("You already found %q.", word)), nil
		}
		return nil, err
	}
	if sc.round.Complete() {
		return msg(fmt.Sprintf("+%d! That was the last one. Final score %d / %d.\n%s",
			points, sc.round.Score(), sc.round.MaxScore(), sc.round.ToDisplayText())), nil
	}
	return msg(fmt.Sprintf("+%d points (%d / %d, %d of %d words)",
		points, sc.round.Score(), sc.round.MaxScore(),
		sc.round.FoundCount(), sc.round.TotalAnswers())), nil
}

func (sc *ShellController) shuffle(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	sc.round.Shuffle()
	return msg(sc.round.ScrambleLine()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	sc.finishRound()
	return msg(sc.round.ToDisplayText()), nil
}

func (sc *ShellController) foundWords(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	found := sc.round.Found()
	if len(found) == 0 {
		return msg("Nothing found yet."), nil
	}
	var sb strings.Builder
	for _, w := range found {
		fmt.Fprintf(&sb, "  %-15s %3d\n", strings.ToUpper(w),
			game.PointsPerLetter*utf8.RuneCountInString(w))
	}
	fmt.Fprintf(&sb, "%d words, %d points", len(found), sc.round.Score())
	return msg(sb.String()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	sc.round.End()
	sc.finishRound()
	return msg(sc.round.ToDisplayText()), nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	if sc.round == nil {
		return nil, errNoRound
	}
	return msg(fmt.Sprintf("Score: %d / %d", sc.round.Score(), sc.round.MaxScore())), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need at least one word to check")
	}
	var sb strings.Builder
	for i, raw := range cmd.args {
		w := lexicon.Normalize(raw)
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %s", w, sc.verdict(w))
	}
	return msg(sb.String()), nil
}

// verdict says what a guess would get: the round rules when one is
// live, plain dictionary validity otherwise.
func (sc *ShellController) verdict(w string) string {
	if !sc.dict.HasWord(w) {
		return "not a word in " + sc.dict.Name()
	}
	if sc.round == nil {
		return "valid word"
	}
	switch {
	case utf8.RuneCountInString(w) < sc.round.MinWordLength():
		return "valid word, but too short for this round"
	case !sc.round.Pool().CanSpell(w):
		return "valid word, but not in the letters"
	case sc.round.HasFound(w):
		return "already found"
	default:
		return fmt.Sprintf("playable for %d points",
			game.PointsPerLetter*utf8.RuneCountInString(w))
	}
}

func (sc *ShellController) anagram(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("need exactly one letter set, e.g. `anagram retinas`")
	}
	mode := anagrammer.ModeBuild
	switch strings.ToLower(cmd.options.String("mode")) {
	case "", "build":
	case "exact":
		mode = anagrammer.ModeExact
	default:
		return nil, errors.New("mode must be build or exact")
	}
	words := anagrammer.Anagram(cmd.args[0], sc.dict, mode)
	if len(words) == 0 {
		return msg("No words."), nil
	}
	return msg(fmt.Sprintf("%s\n%d words", strings.Join(words, " "), len(words))), nil
}

func (sc *ShellController) lexicon(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("%s: %d words (fingerprint %x)",
			sc.dict.Name(), sc.dict.Len(), sc.dict.Fingerprint())), nil
	}
	if _, err := sc.Set("lexicon", cmd.args); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Lexicon is now %s: %d words (fingerprint %x)",
		sc.dict.Name(), sc.dict.Len(), sc.dict.Fingerprint())), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.options.ToDisplayText()), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		_, val := sc.options.Show(opt)
		return msg(val), nil
	}
	values := cmd.args[1:]
	ret, err := sc.Set(opt, values)
	if err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + ret), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "write" {
		if err := sc.config.Write(); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
		return msg("wrote config to file"), nil
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>, or setconfig write")
	}
	key := cmd.args[0]
	value := strings.Join(cmd.args[1:], " ")
	sc.config.Set(key, value)
	return msg(fmt.Sprintf("set config %s to %s (setconfig write persists it)", key, value)), nil
}

func (sc *ShellController) sessionStats(cmd *shellcmd) (*Response, error) {
	return msg(sc.session.String()), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	return sc.storedRounds(cmd, "history")
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	return sc.storedRounds(cmd, "best")
}

func (sc *ShellController) storedRounds(cmd *shellcmd, which string) (*Response, error) {
	st := sc.historyStore()
	if st == nil {
		return nil, errors.New("round history is not available")
	}
	n := 0
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	var recs []store.RoundRecord
	var err error
	if which == "best" {
		recs, err = st.Best(context.Background(), n)
	} else {
		recs, err = st.Recent(context.Background(), n)
	}
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return msg("No rounds on record yet."), nil
	}
	var sb strings.Builder
	sb.WriteString("  played            lexicon  letters          score        words\n")
	for _, r := range recs {
		fmt.Fprintf(&sb, "  %s  %-8s %-15s %5d/%-5d %3d of %d\n",
			r.PlayedAt.Local().Format("2006-01-02 15:04"), r.Lexicon, r.Letters,
			r.Score, r.MaxScore, r.Found, r.Total)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	return sc.handleAutoplay(cmd.args, cmd.options)
}

func (sc *ShellController) handleAutoplay(args []string, options CmdOptions) (*Response, error) {
	if len(args) == 1 && args[0] == "stop" {
		if automatic.IsPlaying.Value() == 0 || sc.autoplayCancel == nil {
			return nil, errors.New("no autoplay batch is running")
		}
		sc.autoplayCancel()
		return msg("stopping autoplay; a partial summary will print shortly"), nil
	}
	if automatic.IsPlaying.Value() > 0 {
		return nil, errors.New("rounds are already being played; `autoplay stop` first")
	}

	rounds, err := options.IntDefault("rounds", defaultAutoplayRounds)
	if err != nil {
		return nil, err
	}
	workers, err := options.IntDefault("workers", 0)
	if err != nil {
		return nil, err
	}
	length, err := options.IntDefault("length", sc.options.LetterCount)
	if err != nil {
		return nil, err
	}
	minLength, err := options.IntDefault("minlength", sc.options.MinWordLength)
	if err != nil {
		return nil, err
	}
	skill := 1.0
	if s := options.String("skill"); s != "" {
		skill, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
	}
	autoplayArgs := automatic.AutoplayArgs{
		Rounds:        rounds,
		Workers:       workers,
		Skill:         skill,
		LetterCount:   length,
		MinWordLength: minLength,
		LogFile:       options.String("log"),
	}

	sc.autoplayCtx, sc.autoplayCancel = context.WithCancel(context.Background())
	if sc.oneShot {
		sess, err := automatic.Playout(sc.autoplayCtx, sc.config, sc.dict, autoplayArgs)
		if err != nil {
			return nil, err
		}
		return msg(sess.String()), nil
	}

	dict := sc.dict
	go func() {
		sess, err := automatic.Playout(sc.autoplayCtx, sc.config, dict, autoplayArgs)
		if err != nil {
			sc.showError(err)
			return
		}
		sc.showMessage("\nautoplay done\n" + sess.String())
	}()
	return msg(fmt.Sprintf("Playing %d rounds in the background; `autoplay stop` ends the batch early.",
		rounds)), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}
