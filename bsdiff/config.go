// Package bsdiff implements the bsdiff 4.x diff engine: the suffix-array
// backed greedy matcher and the chunked parallel scheduler that drives
// it across a target byte sequence.
//
// The package does not know about the patch container format; package
// patch consumes the Control stream this package produces.
package bsdiff

import (
	"runtime"

	"github.com/twotwotwo/bsdiff/bserr"
)

// ParallelKind selects how Config.ParallelScheme partitions the target
// before matching.
type ParallelKind int

const (
	// Never runs one match walker over the whole target.
	Never ParallelKind = iota
	// Auto picks a default chunk size, floored at MinChunkSize.
	Auto
	// ChunkSize runs one match walker per Size-byte slice of target.
	ChunkSize
	// NumJobs divides the target into roughly Size equal chunks.
	NumJobs
)

// ParallelScheme describes the chunking strategy for the parallel
// scheduler. Size is interpreted per Kind and is ignored for Never and
// Auto.
type ParallelScheme struct {
	Kind ParallelKind
	Size int
}

// MinChunkSize is the floor every ChunkSize, NumJobs and Auto chunk size
// is clamped to. Never resolves to the whole target length, unclamped.
const MinChunkSize = 256 * 1024

// defaultAutoChunkSize is the nominal chunk size Auto starts from before
// the MinChunkSize floor and the number-of-CPUs adjustment are applied.
const defaultAutoChunkSize = 512 * 1024

// Config carries the diff engine's tunables. Use Default to get the
// documented defaults, then override individual fields.
type Config struct {
	// SmallMatch: matches no longer than this are noise, not anchors.
	SmallMatch int
	// MismatchCount: tolerance for treating a candidate as "similar"
	// rather than a fresh anchor.
	MismatchCount int
	// LongSuffix: above this length, similarity scanning bisects instead
	// of stepping one byte at a time. Must be >= 64.
	LongSuffix int
	// BufferSize bounds the packer's temporary delta buffer. Must be >= 128.
	BufferSize int
	// CompressionLevel is passed opaquely to the bzip2 encoder, 0..9.
	CompressionLevel int
	// ParallelScheme selects chunking for the parallel scheduler.
	ParallelScheme ParallelScheme
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		SmallMatch:       12,
		MismatchCount:    8,
		LongSuffix:       256,
		BufferSize:       4096,
		CompressionLevel: 6,
		ParallelScheme:   ParallelScheme{Kind: Auto},
	}
}

// Validate rejects out-of-range configuration, returning an
// InvalidArgument error surfaced at entry; it is never recovered locally.
func (c Config) Validate() error {
	if c.SmallMatch < 0 {
		return bserr.InvalidArgument("bsdiff: SmallMatch must be >= 0")
	}
	if c.MismatchCount < 0 {
		return bserr.InvalidArgument("bsdiff: MismatchCount must be >= 0")
	}
	if c.LongSuffix < 64 {
		return bserr.InvalidArgument("bsdiff: LongSuffix must be >= 64")
	}
	if c.BufferSize < 128 {
		return bserr.InvalidArgument("bsdiff: BufferSize must be >= 128")
	}
	if c.CompressionLevel < 0 || c.CompressionLevel > 9 {
		return bserr.InvalidArgument("bsdiff: CompressionLevel must be in [0, 9]")
	}
	switch c.ParallelScheme.Kind {
	case Never, Auto, ChunkSize, NumJobs:
	default:
		return bserr.InvalidArgument("bsdiff: unknown ParallelScheme kind")
	}
	return nil
}

// resolveChunkSize turns the configured scheme plus a target length into
// a concrete chunk size, applying the MinChunkSize floor and coercing
// the legacy NumJobs(0)/ChunkSize(0) inputs to Auto. Auto aims for one
// chunk per CPU, never smaller than defaultAutoChunkSize.
func resolveChunkSize(scheme ParallelScheme, targetLen int) int {
	switch scheme.Kind {
	case Never:
		if targetLen <= 0 {
			return MinChunkSize
		}
		return targetLen
	case ChunkSize:
		if scheme.Size <= 0 {
			return autoChunkSize(targetLen)
		}
		return max(scheme.Size, MinChunkSize)
	case NumJobs:
		if scheme.Size <= 0 {
			return autoChunkSize(targetLen)
		}
		size := (targetLen + scheme.Size - 1) / scheme.Size
		return max(size, MinChunkSize)
	default: // Auto
		return autoChunkSize(targetLen)
	}
}

func autoChunkSize(targetLen int) int {
	cpus := runtime.NumCPU()
	if cpus < 1 {
		cpus = 1
	}
	perCPU := (targetLen + cpus - 1) / cpus
	size := defaultAutoChunkSize
	if perCPU > size {
		size = perCPU
	}
	return max(size, MinChunkSize)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
