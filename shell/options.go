package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/remolino/config"
	"github.com/domino14/remolino/lexicon"
)

// GameOptions are the tunable round parameters. The `set` command
// shows and changes them; `new` reads them.
type GameOptions struct {
	Lexicon string
	// LetterCount is the scramble length; 0 scrambles any word.
	LetterCount   int
	MinWordLength int
	// Duration is the round countdown; 0 plays untimed.
	Duration     time.Duration
	MinSolutions int
	// MaxSolutions bounds the answer count of generated rounds; 0 is
	// unbounded.
	MaxSolutions int
}

func (opts *GameOptions) SetDefaults(cfg *config.Config) {
	if opts.Lexicon == "" {
		opts.Lexicon = cfg.GetString(config.ConfigDefaultLexicon)
		log.Info().Msgf("using default lexicon %v", opts.Lexicon)
	}
	if opts.LetterCount == 0 {
		opts.LetterCount = cfg.GetInt(config.ConfigLetterCount)
	}
	if opts.MinWordLength == 0 {
		opts.MinWordLength = cfg.GetInt(config.ConfigMinWordLength)
	}
	if opts.Duration == 0 {
		opts.Duration = cfg.GetDuration(config.ConfigRoundDuration)
	}
	if opts.MinSolutions == 0 {
		opts.MinSolutions = cfg.GetInt(config.ConfigMinSolutions)
	}
	if opts.MaxSolutions == 0 {
		opts.MaxSolutions = cfg.GetInt(config.ConfigMaxSolutions)
	}
}

func (opts *GameOptions) SetLexicon(fields []string) error {
	if len(fields) != 1 {
		return errors.New("the only valid format is 'set lexicon <name>'")
	}
	opts.Lexicon = strings.ToUpper(fields[0])
	return nil
}

func (opts *GameOptions) SetLetterCount(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n != 0 && (n < 2 || n > 15) {
		return errors.New("letter count must be 0 (any word) or between 2 and 15")
	}
	opts.LetterCount = n
	return nil
}

func (opts *GameOptions) SetMinWordLength(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n < 2 {
		return errors.New("minimum word length must be at least 2")
	}
	opts.MinWordLength = n
	return nil
}

func (opts *GameOptions) SetDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		// Accept a bare number of seconds too.
		secs, serr := strconv.Atoi(value)
		if serr != nil {
			return err
		}
		d = time.Duration(secs) * time.Second
	}
	if d < 0 {
		return errors.New("duration cannot be negative")
	}
	opts.Duration = d
	return nil
}

func (opts *GameOptions) SetMinSolutions(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n < 1 {
		return errors.New("a round needs at least one solution")
	}
	opts.MinSolutions = n
	return nil
}

func (opts *GameOptions) SetMaxSolutions(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("max solutions must be 0 (unbounded) or positive")
	}
	if n > 0 && n < opts.MinSolutions {
		return fmt.Errorf("max solutions %d is below min solutions %d", n, opts.MinSolutions)
	}
	opts.MaxSolutions = n
	return nil
}

func (opts *GameOptions) Show(key string) (bool, string) {
	switch key {
	case "lexicon":
		return true, opts.Lexicon
	case "length":
		return true, strconv.Itoa(opts.LetterCount)
	case "minlength":
		return true, strconv.Itoa(opts.MinWordLength)
	case "duration":
		if opts.Duration == 0 {
			return true, "off"
		}
		return true, opts.Duration.String()
	case "minsolutions":
		return true, strconv.Itoa(opts.MinSolutions)
	case "maxsolutions":
		if opts.MaxSolutions == 0 {
			return true, "unbounded"
		}
		return true, strconv.Itoa(opts.MaxSolutions)
	default:
		return false, "No such option: " + key
	}
}

func (opts *GameOptions) ToDisplayText() string {
	keys := []string{"lexicon", "length", "minlength", "duration",
		"minsolutions", "maxsolutions"}
	out := strings.Builder{}
	out.WriteString("Settings:\n")
	for _, key := range keys {
		_, val := opts.Show(key)
		out.WriteString("  " + key + ": ")
		out.WriteString(val + "\n")
	}
	return out.String()
}

// Set changes one option; switching the lexicon also loads the named
// dictionary. Returns the new displayed value.
func (sc *ShellController) Set(key string, args []string) (string, error) {
	var err error
	switch key {
	case "lexicon":
		prev := sc.options.Lexicon
		err = sc.options.SetLexicon(args)
		if err == nil {
			var d *lexicon.Dictionary
			d, err = lexicon.Get(sc.config, sc.options.Lexicon)
			if err == nil {
				sc.dict = d
			} else {
				sc.options.Lexicon = prev
			}
		}
	case "length":
		err = sc.options.SetLetterCount(args[0])
	case "minlength":
		err = sc.options.SetMinWordLength(args[0])
	case "duration":
		err = sc.options.SetDuration(args[0])
	case "minsolutions":
		err = sc.options.SetMinSolutions(args[0])
	case "maxsolutions":
		err = sc.options.SetMaxSolutions(args[0])
	default:
		err = errors.New("option " + key + " not found")
	}
	if err != nil {
		return "", err
	}
	_, val := sc.options.Show(key)
	return val, nil
}
