package bsdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIndex is a brute-force SuffixIndex, independent of package sarray,
// used so these tests exercise the walker in isolation from suffix array
// construction.
type fakeIndex struct {
	data []byte
}

func (f fakeIndex) SearchLCP(q []byte) (int, int) {
	if len(f.data) == 0 || len(q) == 0 {
		return len(f.data), 0
	}
	bestI, bestN := len(f.data), 0
	for start := 0; start < len(f.data); start++ {
		n := 0
		for n < len(q) && start+n < len(f.data) && f.data[start+n] == q[n] {
			n++
		}
		if n > bestN {
			bestN = n
			bestI = start
		}
	}
	return bestI, bestN
}

func controlSum(controls []Control) (add, cp uint64) {
	for _, c := range controls {
		add += c.Add
		cp += c.Copy
	}
	return
}

func TestWalkerEmptyEmpty(t *testing.T) {
	S, T := []byte(""), []byte("")
	w := NewWalker(S, T, fakeIndex{S}, Default())
	controls := w.All()
	add, cp := controlSum(controls)
	assert.Equal(t, uint64(0), add)
	assert.Equal(t, uint64(0), cp)
}

func TestWalkerEmptySourceExtraTarget(t *testing.T) {
	S, T := []byte(""), []byte("extra")
	w := NewWalker(S, T, fakeIndex{S}, Default())
	controls := w.All()
	require.Len(t, controls, 1)
	assert.Equal(t, Control{Add: 0, Copy: 5, Seek: 0}, controls[0])
}

func TestWalkerIdenticalSourceAndTarget(t *testing.T) {
	S := []byte("the quick brown fox")
	T := []byte("the quick brown fox")
	w := NewWalker(S, T, fakeIndex{S}, Default())
	controls := w.All()
	add, _ := controlSum(controls)
	assert.Equal(t, uint64(19), add)

	total := uint64(0)
	for _, c := range controls {
		total += c.Add + c.Copy
	}
	assert.Equal(t, uint64(len(T)), total)
}

func TestWalkerSingleWordSubstitution(t *testing.T) {
	S := []byte("the quick brown fox jumps over the lazy dog")
	T := []byte("the quick brown cat jumps over the lazy dog")
	w := NewWalker(S, T, fakeIndex{S}, Default())
	controls := w.All()

	add, cp := controlSum(controls)
	assert.Equal(t, uint64(len(T)), add+cp)
	assert.NotEmpty(t, controls)
}

func TestWalkerControlSumAlwaysMatchesTargetLength(t *testing.T) {
	cases := []struct{ s, t string }{
		{"", ""},
		{"abc", ""},
		{"", "abc"},
		{"abcabcabc", "abcabcabd"},
		{"mississippi", "mississippimississippi"},
		{"aaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbb"},
	}
	for _, c := range cases {
		S, T := []byte(c.s), []byte(c.t)
		w := NewWalker(S, T, fakeIndex{S}, Default())
		controls := w.All()
		add, cp := controlSum(controls)
		assert.Equal(t, uint64(len(T)), add+cp, "S=%q T=%q", c.s, c.t)
	}
}
