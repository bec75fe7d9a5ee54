package bsdiff

import "testing"

import "github.com/stretchr/testify/assert"

func TestBestSimilarityLength(t *testing.T) {
	// Every position matches: score climbs monotonically, max at the end.
	assert.Equal(t, 4, bestSimilarityLength([]byte("abcd"), []byte("abcd")))

	// No position matches: score never goes positive.
	assert.Equal(t, 0, bestSimilarityLength([]byte("abcd"), []byte("wxyz")))

	// Matches then diverges: peak is where matches stop helping.
	assert.Equal(t, 3, bestSimilarityLength([]byte("abcxxx"), []byte("abcyyy")))
}

func TestThreeWayDivide(t *testing.T) {
	xs := []byte("aaaa")
	ys := []byte("aaaa") // matches xs fully
	zs := []byte("bbbb") // matches xs nowhere
	assert.Equal(t, 4, threeWayDivide(xs, ys, zs))

	// Symmetric: nobody wins.
	assert.Equal(t, 0, threeWayDivide(xs, zs, zs))
}

func TestReversed(t *testing.T) {
	assert.Equal(t, []byte("cba"), reversed([]byte("abc")))
	assert.Equal(t, []byte{}, reversed(nil))
}
