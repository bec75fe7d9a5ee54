package bsdiff

// SuffixIndex is a longest-common-prefix search over an immutable
// source. *sarray.Index satisfies this; the walker only needs the
// query, not the construction.
type SuffixIndex interface {
	// SearchLCP returns (i, n): the longest n such that the source's
	// bytes at i match q's first n bytes, n maximal.
	SearchLCP(q []byte) (i, n int)
}

// Walker is a stateful, pull-based producer of Control records. Call
// Next in a loop until it returns ok == false.
type Walker struct {
	S, T []byte
	idx  SuffixIndex
	cfg  Config

	i0, j0, n0, b0 int
	done           bool
}

// NewWalker returns a Walker over the given source/target pair, driven by
// idx (a suffix index already built over S) and cfg.
func NewWalker(S, T []byte, idx SuffixIndex, cfg Config) *Walker {
	return &Walker{S: S, T: T, idx: idx, cfg: cfg}
}

// Next produces the next control record. It returns ok == false once the
// target has been fully accounted for; no further calls are valid after that.
func (w *Walker) Next() (Control, bool) {
	if w.done {
		return Control{}, false
	}

	i, j, n := w.findAnchor()
	a0, b := shrinkGap(w.S, w.T, w.i0, w.j0, w.n0, i, j)

	add := w.b0 + w.n0 + a0
	cp := (j - b) - (w.j0 + w.n0 + a0)
	seek := int64(i-b) - int64(w.i0+w.n0+a0)

	ctrl := Control{Add: uint64(add), Copy: uint64(cp), Seek: seek}

	terminal := i == len(w.S) && j == len(w.T) && n == 0
	w.i0, w.j0, w.n0, w.b0 = i, j, n, b
	if terminal && b == 0 {
		w.done = true
	}
	return ctrl, true
}

// All drains the walker into a slice, for callers (the parallel
// scheduler, tests) that need a materialized control stream.
func (w *Walker) All() []Control {
	var out []Control
	for {
		c, ok := w.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

// sourceAt returns (S[idx], true), or (0, false) if idx falls outside S.
func sourceAt(S []byte, idx int) (byte, bool) {
	if idx < 0 || idx >= len(S) {
		return 0, false
	}
	return S[idx], true
}

// findAnchor advances the target cursor from j0+n0 until a fresh anchor
// is justified, or the tail bound is hit and the synthetic terminal
// anchor is returned.
func (w *Walker) findAnchor() (i, j, n int) {
	S, T := w.S, w.T
	j = w.j0 + w.n0
	m := 0
	k := j

	for {
		if j >= len(T)-w.cfg.SmallMatch {
			return len(S), len(T), 0
		}

		var candI, candN int
		candI, candN = w.idx.SearchLCP(T[j:])

		for k < j+candN {
			if v, ok := sourceAt(S, w.i0+(k-w.j0)); ok && v == T[k] {
				m++
			}
			k++
		}

		switch {
		case candN == 0:
			j++
			m = 0
		case m == candN || candN <= w.cfg.SmallMatch:
			j += candN
			m = 0
		case candN <= m+w.cfg.MismatchCount:
			skip := w.skipLength(candI, j, candN)
			for s := 0; s < skip; s++ {
				if v, ok := sourceAt(S, w.i0+(j+s-w.j0)); ok && v == T[j+s] {
					m--
				}
			}
			j += skip
		default:
			return candI, j, candN
		}
	}
}

// skipLength chooses how far to advance past a tolerated mismatch run:
// below LongSuffix, step one byte at a time; above it, bisect for the
// largest prefix length that still lands on the same (i, n) match endpoint.
func (w *Walker) skipLength(i, j, n int) int {
	if n <= w.cfg.LongSuffix {
		return 1
	}
	T := w.T
	lo, hi := 0, n
	best := 0
	for lo <= hi {
		mid := lo + (hi-lo)/2
		iz, nz := w.idx.SearchLCP(T[j+mid:])
		if i+n == iz+nz && j+n == j+mid+nz {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best < 1 {
		return 1
	}
	return best
}
