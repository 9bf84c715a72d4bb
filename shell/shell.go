// Package shell is the interactive remolino session: a readline loop
// that drives rounds, the anagram solver, session statistics, the
// round history, and autoplay.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/remolino/config"
	"github.com/domino14/remolino/game"
	"github.com/domino14/remolino/lexicon"
	"github.com/domino14/remolino/stats"
	"github.com/domino14/remolino/store"
)

var (
	errNoData            = errors.New("no data in command")
	errWrongOptionSyntax = errors.New("options need to be specified with a dash")
	errNoRound           = errors.New("no round is in progress; start one with `new`")
)

type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string
	version  string

	options *GameOptions

	dict  *lexicon.Dictionary
	round *game.Round
	// recorded flips once the live round has been folded into the
	// session stats and the history store.
	recorded bool

	session *stats.SessionStats

	// history store, opened on first use. storeBroken means we warned
	// already and play on without persistence.
	store       *store.Store
	storeBroken bool

	autoplayCtx    context.Context
	autoplayCancel context.CancelFunc

	// oneShot is set when a single command came in on the command
	// line; batch commands then run synchronously.
	oneShot bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config, execPath, version string) *ShellController {
	opts := &GameOptions{}
	opts.SetDefaults(cfg)

	sc := &ShellController{
		config:   cfg,
		execPath: execPath,
		version:  version,
		options:  opts,
		session:  &stats.SessionStats{},
		dict:     lexicon.LoadDictionary(cfg, opts.Lexicon),
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          sc.prompt(),
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
		AutoComplete:        NewShellCompleter(sc),
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

// prompt renders the readline prompt, with the countdown folded in
// while a timed round is live.
func (sc *ShellController) prompt() string {
	sc.finishRound()
	if sc.round != nil && !sc.round.Over() && sc.round.Timed() {
		return "\033[31mremolino \033[0m" + game.Countdown(sc.round.TimeRemaining()) + "> "
	}
	return "\033[31mremolino>\033[0m "
}

// finishRound folds a just-ended round into the session stats and the
// history store, exactly once. Rounds that never had answers are not
// worth recording.
func (sc *ShellController) finishRound() {
	if sc.round == nil || !sc.round.Over() || sc.recorded {
		return
	}
	sc.recorded = true
	summary := sc.round.Summary()
	if summary.Total == 0 {
		return
	}
	sc.session.AddRound(summary)
	st := sc.historyStore()
	if st == nil {
		return
	}
	err := st.InsertRound(context.Background(), store.RoundRecord{
		PlayedAt: time.Now(),
		Lexicon:  summary.Lexicon,
		Letters:  summary.Letters,
		Score:    summary.Score,
		MaxScore: summary.MaxScore,
		Found:    summary.Found,
		Total:    summary.Total,
		Seconds:  summary.Seconds,
	})
	if err != nil {
		log.Err(err).Msg("insert-round")
	}
}

// historyStore opens the round history on first use. An unusable
// store gets one warning and the session plays on without it.
func (sc *ShellController) historyStore() *store.Store {
	if sc.store != nil {
		return sc.store
	}
	if sc.storeBroken {
		return nil
	}
	path := sc.config.GetString(config.ConfigHistoryFile)
	if path == "" {
		sc.storeBroken = true
		return nil
	}
	st, err := store.Open(path)
	if err != nil {
		sc.storeBroken = true
		sc.showMessage("Could not open round history (" + err.Error() + "); playing without it.")
		return nil
	}
	sc.store = st
	return st
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields parses a command line into the command, its plain
// arguments, and its dash options. Option values may repeat.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}

	lastWasOption := false
	lastOption := ""
	for _, token := range fields[1:] {
		if strings.HasPrefix(token, "-") {
			lastWasOption = true
			lastOption = token[1:]
			continue
		}
		if lastWasOption {
			options[lastOption] = append(options[lastOption], token)
			lastWasOption = false
		} else {
			args = append(args, token)
		}
	}
	if lastWasOption {
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) executeCommand(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newRound(cmd)
	case "guess":
		return sc.guess(cmd)
	case "shuffle", "twist":
		return sc.shuffle(cmd)
	case "show":
		return sc.show(cmd)
	case "found":
		return sc.foundWords(cmd)
	case "solve", "giveup":
		return sc.solve(cmd)
	case "score":
		return sc.score(cmd)
	case "check":
		return sc.check(cmd)
	case "anagram":
		return sc.anagram(cmd)
	case "lexicon":
		return sc.lexicon(cmd)
	case "set":
		return sc.set(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "stats":
		return sc.sessionStats(cmd)
	case "history":
		return sc.history(cmd)
	case "best":
		return sc.best(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	case "help":
		return sc.help(cmd)
	default:
		// A live round turns unrecognized words into guesses, so the
		// player can just type words.
		if sc.round != nil && len(cmd.args) == 0 && len(cmd.options) == 0 {
			return sc.guess(&shellcmd{cmd: "guess", args: []string{cmd.cmd}})
		}
		return nil, errors.New("command " + cmd.cmd + " not found")
	}
}

func (sc *ShellController) standardShell(line string, sig chan os.Signal) error {
	if line == "exit" || line == "bye" {
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	}
	cmd, err := extractFields(line)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil
		}
		sc.showError(err)
		return nil
	}
	resp, err := sc.executeCommand(cmd)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
	return nil
}

// Loop runs the readline loop until exit or interrupt.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		sc.l.SetPrompt(sc.prompt())
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.standardShell(line, sig); err != nil {
			log.Err(err).Msg("breaking-loop")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command line, for one-shot invocations like
// `remolino autoplay -rounds 100`.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	defer sc.l.Close()
	sc.oneShot = true
	if err := sc.standardShell(line, sig); err != nil {
		log.Err(err).Msg("execute")
	}
}

// Cleanup stops a running autoplay batch and closes the history store.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
	if sc.store != nil {
		if err := sc.store.Close(); err != nil {
			log.Err(err).Msg("closing-store")
		}
	}
}
