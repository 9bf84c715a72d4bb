// Package config wraps viper to provide remolino's configuration:
// defaults, an optional YAML config file, REMOLINO_ environment
// variables, and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Named configuration keys. Keep in sync with the defaults installed
// in Load.
const (
	ConfigDebug          = "debug"
	ConfigDataPath       = "data-path"
	ConfigDefaultLexicon = "default-lexicon"
	ConfigLetterCount    = "letter-count"
	ConfigRoundDuration  = "round-duration"
	ConfigMinWordLength  = "min-word-length"
	ConfigMinSolutions   = "min-solutions"
	ConfigMaxSolutions   = "max-solutions"
	ConfigHistoryFile    = "history-file"
	ConfigCPUProfile     = "cpu-profile"
	ConfigMemProfile     = "mem-profile"
)

const envPrefix = "remolino"

type Config struct {
	v *viper.Viper
	// args left over after flag parsing; main treats these as a
	// one-shot shell command.
	rest []string
	// directory the config file is written to.
	confDir string
}

func (c *Config) init() {
	if c.v != nil {
		return
	}
	c.v = viper.New()
	c.v.SetDefault(ConfigDebug, false)
	c.v.SetDefault(ConfigDataPath, "./data")
	c.v.SetDefault(ConfigDefaultLexicon, "NWL23")
	c.v.SetDefault(ConfigLetterCount, 7)
	c.v.SetDefault(ConfigRoundDuration, 2*time.Minute)
	c.v.SetDefault(ConfigMinWordLength, 3)
	c.v.SetDefault(ConfigMinSolutions, 1)
	c.v.SetDefault(ConfigMaxSolutions, 0)
	c.v.SetDefault(ConfigHistoryFile, "data/history.db")
	c.v.SetDefault(ConfigCPUProfile, "")
	c.v.SetDefault(ConfigMemProfile, "")

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
}

// Load initializes the config from defaults, the config file, the
// environment, and finally any flags present in args. Args that do not
// look like flags are preserved and available via Args().
func (c *Config) Load(args []string) error {
	c.init()

	if dir, err := os.UserConfigDir(); err == nil {
		c.confDir = filepath.Join(dir, "remolino")
		c.v.AddConfigPath(c.confDir)
		c.v.SetConfigName("config")
		c.v.SetConfigType("yaml")
		err = c.v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Debug().Msg("no config file found; using defaults")
		} else if err != nil {
			log.Err(err).Msg("config-file-read-failed")
		}
	}

	fs := pflag.NewFlagSet("remolino", pflag.ContinueOnError)
	// Leave everything after the first non-flag argument alone so that
	// a one-shot command line like `remolino autoplay -rounds 50` does
	// not have its own options swallowed here.
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, c.v.GetBool(ConfigDebug), "debug logging")
	fs.String(ConfigDataPath, c.v.GetString(ConfigDataPath), "directory holding data files (lexica etc)")
	fs.String(ConfigDefaultLexicon, c.v.GetString(ConfigDefaultLexicon), "the lexicon loaded at startup")
	fs.Int(ConfigLetterCount, c.v.GetInt(ConfigLetterCount), "scramble length for new rounds; 0 picks any word")
	fs.Duration(ConfigRoundDuration, c.v.GetDuration(ConfigRoundDuration), "round countdown; 0 disables the timer")
	fs.Int(ConfigMinWordLength, c.v.GetInt(ConfigMinWordLength), "shortest creditable word")
	fs.Int(ConfigMinSolutions, c.v.GetInt(ConfigMinSolutions), "fewest answers a generated round may have")
	fs.Int(ConfigMaxSolutions, c.v.GetInt(ConfigMaxSolutions), "most answers a generated round may have; 0 is unlimited")
	fs.String(ConfigHistoryFile, c.v.GetString(ConfigHistoryFile), "sqlite file for round history; empty disables")
	fs.String(ConfigCPUProfile, c.v.GetString(ConfigCPUProfile), "write cpu profile to file")
	fs.String(ConfigMemProfile, c.v.GetString(ConfigMemProfile), "write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.rest = fs.Args()
	return c.v.BindPFlags(fs)
}

// Args returns the non-flag arguments left over from Load.
func (c *Config) Args() []string {
	return c.rest
}

func (c *Config) GetString(key string) string {
	c.init()
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	c.init()
	return c.v.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	c.init()
	return c.v.GetBool(key)
}

func (c *Config) GetDuration(key string) time.Duration {
	c.init()
	return c.v.GetDuration(key)
}

// Set changes a setting for the live session. It does not persist
// anything; see Write.
func (c *Config) Set(key string, value any) {
	c.init()
	c.v.Set(key, value)
}

// Write persists the current settings to the user config file.
func (c *Config) Write() error {
	c.init()
	if c.confDir == "" {
		return errors.New("no config directory available")
	}
	if err := os.MkdirAll(c.confDir, 0o755); err != nil {
		return err
	}
	return c.v.WriteConfigAs(filepath.Join(c.confDir, "config.yaml"))
}

// AdjustRelativePaths rebases relative path settings onto basePath.
// The shell binary uses this to find its data files next to the
// executable no matter where it is invoked from.
func (c *Config) AdjustRelativePaths(basePath string) {
	c.init()
	for _, key := range []string{ConfigDataPath, ConfigHistoryFile} {
		p := c.v.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		adjusted := filepath.Join(basePath, p)
		log.Debug().Str("key", key).Str("path", adjusted).Msg("adjust-relative-path")
		c.v.Set(key, adjusted)
	}
}

// LexiconPath returns the directory word lists are read from.
func (c *Config) LexiconPath() string {
	return filepath.Join(c.GetString(ConfigDataPath), "lexica")
}

// SanitizedSettings returns a copy of all settings, suitable for
// logging.
func (c *Config) SanitizedSettings() map[string]any {
	c.init()
	settings := map[string]any{}
	for k, v := range c.v.AllSettings() {
		settings[k] = v
	}
	return settings
}

func (c *Config) String() string {
	return fmt.Sprintf("%v", c.SanitizedSettings())
}

// DefaultConfig returns a config loaded purely from defaults and the
// environment. Tests use this.
func DefaultConfig() *Config {
	c := &Config{}
	c.init()
	return c
}
