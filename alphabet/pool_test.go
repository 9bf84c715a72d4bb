package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pooltest struct {
	letters string
	num     int
}

func TestPoolFromString(t *testing.T) {
	testcases := []pooltest{
		{"AENPPSW", 7},
		{"tca", 3},
		{"t w i s t", 5},
		{"ñoño", 4},
		{"", 0},
	}
	for _, tc := range testcases {
		p := PoolFromString(tc.letters)
		assert.Equal(t, tc.num, p.NumLetters())
	}
}

func TestPoolCaseInsensitive(t *testing.T) {
	p := PoolFromString("TwIsT")
	assert.Equal(t, 2, p.Count('t'))
	assert.Equal(t, 2, p.Count('T'))
	assert.True(t, p.Has('W'))
	assert.Equal(t, "isttw", p.String())
}

func TestTakeThenAddRestores(t *testing.T) {
	p := PoolFromString("tca")
	before := p.String()
	assert.True(t, p.Take('t'))
	assert.Equal(t, 2, p.NumLetters())
	p.Add('t')
	assert.Equal(t, before, p.String())
	assert.Equal(t, 3, p.NumLetters())
}

func TestTakeMissingLetter(t *testing.T) {
	p := PoolFromString("tca")
	assert.False(t, p.Take('z'))
	assert.Equal(t, 3, p.NumLetters())
	assert.True(t, p.Take('c'))
	assert.False(t, p.Take('c'))
}

type spelltest struct {
	pool      string
	word      string
	spellable bool
}

func TestCanSpell(t *testing.T) {
	testcases := []spelltest{
		{"tca", "cat", true},
		{"tca", "act", true},
		{"tca", "CAT", true},
		{"tca", "ca", true},
		{"tca", "cats", false},
		{"tca", "tt", false},
		{"tca", "", true},
		{"needle", "eel", true},
		{"needle", "dense", false},
		{"aenppsw", "happens", false},
		{"haenpps", "happens", true},
	}
	for _, tc := range testcases {
		p := PoolFromString(tc.pool)
		assert.Equal(t, tc.spellable, p.CanSpell(tc.word),
			"pool %v word %v", tc.pool, tc.word)
	}
}

func TestCanSpellDoesNotMutate(t *testing.T) {
	p := PoolFromString("tca")
	p.CanSpell("cat")
	p.CanSpell("cats")
	assert.Equal(t, 3, p.NumLetters())
	assert.Equal(t, "act", p.String())
}

func TestCopyIsIndependent(t *testing.T) {
	p := PoolFromString("twist")
	c := p.Copy()
	assert.True(t, c.Take('w'))
	assert.Equal(t, 5, p.NumLetters())
	assert.Equal(t, 4, c.NumLetters())
	assert.True(t, p.Has('w'))
}

type alphagramtest struct {
	word      string
	alphagram string
}

func TestAlphagram(t *testing.T) {
	testcases := []alphagramtest{
		{"cat", "act"},
		{"TWIST", "isttw"},
		{"needle", "deeeln"},
		{"", ""},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.alphagram, Alphagram(tc.word))
	}
}

func TestAnagramsShareAlphagram(t *testing.T) {
	assert.Equal(t, Alphagram("Cat"), Alphagram("ACT"))
	assert.NotEqual(t, Alphagram("cat"), Alphagram("cats"))
}
