package bsdiff

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkBounds(t *testing.T) {
	bounds := chunkBounds(10, 4)
	assert.Equal(t, [][2]int{{0, 4}, {4, 8}, {8, 10}}, bounds)

	bounds = chunkBounds(0, 4)
	assert.Equal(t, [][2]int{{0, 0}}, bounds)
}

func TestCompareParallelEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	S := make([]byte, 1024*1024)
	rng.Read(S)
	T := append([]byte(nil), S...)
	for i := 0; i < len(T)/25; i++ {
		T[rng.Intn(len(T))] = byte(rng.Intn(256))
	}

	never := Default()
	never.ParallelScheme = ParallelScheme{Kind: Never}
	controlsNever, err := Compare(S, T, never)
	require.NoError(t, err)

	chunked := Default()
	chunked.ParallelScheme = ParallelScheme{Kind: ChunkSize, Size: MinChunkSize}
	controlsChunked, err := Compare(S, T, chunked)
	require.NoError(t, err)

	sumNever := uint64(0)
	for _, c := range controlsNever {
		sumNever += c.Add + c.Copy
	}
	sumChunked := uint64(0)
	for _, c := range controlsChunked {
		sumChunked += c.Add + c.Copy
	}
	assert.Equal(t, uint64(len(T)), sumNever)
	assert.Equal(t, uint64(len(T)), sumChunked)
}

func TestResolveChunkSizeCoercesLegacyZero(t *testing.T) {
	assert.Equal(t, autoChunkSize(1000), resolveChunkSize(ParallelScheme{Kind: ChunkSize, Size: 0}, 1000))
	assert.Equal(t, autoChunkSize(1000), resolveChunkSize(ParallelScheme{Kind: NumJobs, Size: 0}, 1000))
}

func TestResolveChunkSizeFloor(t *testing.T) {
	assert.Equal(t, MinChunkSize, resolveChunkSize(ParallelScheme{Kind: ChunkSize, Size: 10}, 1000))
}
