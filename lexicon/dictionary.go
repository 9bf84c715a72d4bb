// Package lexicon loads and holds word lists. A Dictionary is a named,
// deduplicated set of normalized words; dictionary membership is the
// word-validity half of checking a guess.
package lexicon

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/domino14/remolino/config"
)

// Dictionary is an immutable set of words read from a word list.
type Dictionary struct {
	name        string
	words       map[string]bool
	sorted      []string
	fingerprint uint64
}

// NewDictionary creates an empty dictionary with the given name.
func NewDictionary(name string) *Dictionary {
	return &Dictionary{name: name, words: map[string]bool{}}
}

// Normalize puts a raw word or guess into dictionary form: surrounding
// whitespace trimmed, case lowered.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// ReadDictionary scans a word list: one word per line, blank lines
// dropped, duplicates collapsed. Lists that are not valid UTF-8 are
// decoded as ISO 8859-1; some older European word lists still ship in
// that encoding.
func ReadDictionary(name string, r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		log.Debug().Str("lexicon", name).Msg("not-utf8-assuming-latin1")
		data, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, err
		}
	}
	d := NewDictionary(name)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		word := Normalize(scanner.Text())
		if word == "" {
			continue
		}
		d.words[word] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	d.reindex()
	return d, nil
}

// load reads the named word list from the configured lexicon path.
func load(cfg *config.Config, name string) (*Dictionary, error) {
	filename := filepath.Join(cfg.LexiconPath(), name+".txt")
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadDictionary(name, file)
}

// LoadDictionary loads a word list by name through the global object
// cache. A missing or unreadable list is not fatal; the session can
// still run, it just has no playable words. Warn and move on.
func LoadDictionary(cfg *config.Config, name string) *Dictionary {
	d, err := Get(cfg, name)
	if err != nil {
		log.Warn().Err(err).Str("lexicon", name).
			Msg("could not read word list; starting with an empty dictionary")
		return NewDictionary(name)
	}
	return d
}

func (d *Dictionary) reindex() {
	d.sorted = lo.Keys(d.words)
	sort.Strings(d.sorted)
	d.fingerprint = xxhash.Sum64String(strings.Join(d.sorted, "\n"))
}

// Name returns the lexicon name this dictionary was loaded from.
func (d *Dictionary) Name() string { return d.name }

// HasWord reports whether the word is in the dictionary. The word is
// normalized first, so HasWord("CAT") and HasWord(" cat ") agree.
func (d *Dictionary) HasWord(word string) bool {
	return d.words[Normalize(word)]
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.sorted) }

// Words returns every word in sorted order. The returned slice is
// shared; do not modify it.
func (d *Dictionary) Words() []string { return d.sorted }

// WordsOfLength returns the words with exactly n letters, in sorted
// order.
func (d *Dictionary) WordsOfLength(n int) []string {
	return lo.Filter(d.sorted, func(w string, _ int) bool {
		return utf8.RuneCountInString(w) == n
	})
}

// Fingerprint returns a 64-bit hash of the dictionary contents. Two
// dictionaries with the same word set hash identically no matter the
// ordering or duplication in their source lists.
func (d *Dictionary) Fingerprint() uint64 { return d.fingerprint }
