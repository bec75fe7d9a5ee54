package bsdiff

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/twotwotwo/bsdiff/sarray"
)

// Compare runs the full diff engine (suffix index construction, match
// walking, and chunk scheduling) over S and T and returns the resulting
// control stream. S and T are borrowed read-only for the call.
func Compare(S, T []byte, cfg Config) ([]Control, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	idx, err := sarray.Build(S)
	if err != nil {
		return nil, err
	}
	return CompareWithIndex(S, T, idx, cfg)
}

// CompareWithIndex is Compare for callers that already built a suffix
// index over S, e.g. to diff one source against several targets without
// repeating index construction cost.
func CompareWithIndex(S, T []byte, idx SuffixIndex, cfg Config) ([]Control, error) {
	chunkSize := resolveChunkSize(cfg.ParallelScheme, len(T))
	if cfg.ParallelScheme.Kind == Never || chunkSize >= len(T) {
		return NewWalker(S, T, idx, cfg).All(), nil
	}
	return compareParallel(S, T, idx, cfg, chunkSize)
}

// chunkBounds returns the [start, end) byte ranges T is split into for a
// given chunk size.
func chunkBounds(targetLen, chunkSize int) [][2]int {
	if chunkSize <= 0 {
		chunkSize = targetLen
	}
	var bounds [][2]int
	for start := 0; start < targetLen; start += chunkSize {
		end := start + chunkSize
		if end > targetLen {
			end = targetLen
		}
		bounds = append(bounds, [2]int{start, end})
	}
	if len(bounds) == 0 {
		bounds = append(bounds, [2]int{0, 0})
	}
	return bounds
}

// compareParallel runs one independent match walker per chunk of T
// (source cursor starting at 0 in every chunk),
// materialize each chunk's control stream, then concatenate them in
// strict chunk order with a seam-stitching seek control appended after
// every chunk but the last.
func compareParallel(S, T []byte, idx SuffixIndex, cfg Config, chunkSize int) ([]Control, error) {
	bounds := chunkBounds(len(T), chunkSize)
	results := make([][]Control, len(bounds))

	g, _ := errgroup.WithContext(context.Background())
	for i, b := range bounds {
		i, b := i, b
		g.Go(func() error {
			sub := T[b[0]:b[1]]
			results[i] = NewWalker(S, sub, idx, cfg).All()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Control
	for i, chunk := range results {
		out = append(out, chunk...)
		if i == len(results)-1 {
			continue
		}
		var pos int64
		for _, c := range chunk {
			pos += int64(c.Add) + c.Seek
		}
		out = append(out, Control{Add: 0, Copy: 0, Seek: -pos})
	}
	return out, nil
}
