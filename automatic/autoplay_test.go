package automatic

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/remolino/config"
	"github.com/domino14/remolino/lexicon"
)

func testDictionary(t *testing.T) *lexicon.Dictionary {
	t.Helper()
	words := "act\ncat\nat\nta\ntact\ncot\ncoat\ntaco\ndog\ngod\ndo\ngo\n"
	d, err := lexicon.ReadDictionary("SMALL", strings.NewReader(words))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPlayoutPerfectSkill(t *testing.T) {
	sess, err := Playout(context.Background(), config.DefaultConfig(), testDictionary(t),
		AutoplayArgs{
			Rounds:        8,
			Workers:       2,
			Skill:         1,
			LetterCount:   4,
			MinWordLength: 3,
		})
	require.NoError(t, err)
	assert.Equal(t, 8, sess.Rounds())
	// A perfect player finds every answer.
	assert.Equal(t, 1.0, sess.CompletionRate())
	assert.Greater(t, sess.Score().Min(), 0.0)
}

func TestPlayoutSkillZero(t *testing.T) {
	sess, err := Playout(context.Background(), config.DefaultConfig(), testDictionary(t),
		AutoplayArgs{
			Rounds:        5,
			Workers:       3,
			Skill:         0,
			LetterCount:   4,
			MinWordLength: 3,
		})
	require.NoError(t, err)
	assert.Equal(t, 5, sess.Rounds())
	assert.Equal(t, 0, sess.WordsFound())
	assert.Equal(t, 0.0, sess.Score().Max())
}

func TestPlayoutLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "rounds.yaml")
	sess, err := Playout(context.Background(), config.DefaultConfig(), testDictionary(t),
		AutoplayArgs{
			Rounds:        3,
			Workers:       1,
			Skill:         1,
			LetterCount:   4,
			MinWordLength: 3,
			LogFile:       logFile,
		})
	require.NoError(t, err)
	require.Equal(t, 3, sess.Rounds())

	f, err := os.Open(logFile)
	require.NoError(t, err)
	defer f.Close()

	dec := yaml.NewDecoder(f)
	n := 0
	for {
		var rec RoundLog
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		n++
		assert.Equal(t, "SMALL", rec.Lexicon)
		assert.Equal(t, len(rec.Words), rec.Found)
		assert.Equal(t, rec.Total, rec.Found)
		assert.Equal(t, rec.MaxScore, rec.Score)
	}
	assert.Equal(t, 3, n)
}

func TestPlayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess, err := Playout(ctx, config.DefaultConfig(), testDictionary(t),
		AutoplayArgs{
			Rounds:        50,
			Workers:       2,
			Skill:         1,
			LetterCount:   4,
			MinWordLength: 3,
		})
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Rounds())
}

func TestPlayoutBadArgs(t *testing.T) {
	dict := testDictionary(t)
	_, err := Playout(context.Background(), config.DefaultConfig(), dict,
		AutoplayArgs{Rounds: 0, Skill: 1})
	assert.Error(t, err)

	_, err = Playout(context.Background(), config.DefaultConfig(), dict,
		AutoplayArgs{Rounds: 1, Skill: 1.5})
	assert.Error(t, err)
}
