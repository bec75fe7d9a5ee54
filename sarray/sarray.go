// Package sarray builds the suffix index over a source byte sequence
// that the match walker (package bsdiff) treats as an external
// collaborator: a sorted list of suffix start positions supporting a
// longest-common-prefix query, (i, n), that the matcher drives on every
// step.
//
// Construction follows the Larsson-Sadakane qsufsort algorithm, the same
// one the reference bsdiff implementations use: bucket-sort by first
// character, then repeatedly double the compared prefix length with a
// ternary-split quicksort over still-tied groups, until every suffix has
// a unique rank.
package sarray

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/twotwotwo/bsdiff/bserr"
)

// MaxSourceLen is the largest source bsdiff will index: 2^32-1 bytes,
// the ceiling the format's position fields assume.
const MaxSourceLen = (1 << 32) - 1

// Index answers longest-common-prefix queries against the source it was
// built from. The zero value is not usable; construct with Build.
type Index struct {
	data []byte
	sa   []int // sa[0] is the empty-suffix sentinel (== len(data)); sa[1:] sorted suffix starts
}

// Build constructs a suffix index over data. data must not be mutated for
// the lifetime of the returned Index; the index keeps the slice, not a copy.
func Build(data []byte) (*Index, error) {
	if len(data) > MaxSourceLen {
		return nil, errors.Wrapf(errInvalidLen, "source length %d exceeds %d", len(data), MaxSourceLen)
	}
	return &Index{data: data, sa: qsufsort(data)}, nil
}

var errInvalidLen = errors.Wrap(bserr.ErrInvalidArgument, "sarray: source too large")

// Len returns the length of the indexed source.
func (idx *Index) Len() int { return len(idx.data) }

// SearchLCP returns (i, n) such that n is the longest prefix of q found
// anywhere in the indexed source, starting at position i: data[i:i+n] ==
// q[:n]. i == Len() and n == 0 when q or the source is empty.
func (idx *Index) SearchLCP(q []byte) (i int, n int) {
	data := idx.data
	if len(data) == 0 || len(q) == 0 {
		return len(data), 0
	}
	sa := idx.sa
	lo, hi := 0, len(sa)-1
	for hi-lo >= 2 {
		mid := lo + (hi-lo)/2
		if bytes.Compare(data[sa[mid]:], q) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	xPos, xLen := sa[lo], matchLen(data[sa[lo]:], q)
	yPos, yLen := sa[hi], matchLen(data[sa[hi]:], q)
	if xLen > yLen {
		return xPos, xLen
	}
	return yPos, yLen
}

func matchLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// qsufsort builds the suffix array of data using the Larsson-Sadakane
// doubling algorithm. The returned slice has length len(data)+1; index 0
// is the sentinel (empty) suffix, so it always sorts first.
func qsufsort(data []byte) []int {
	n := len(data)
	sa := make([]int, n+1)
	rank := make([]int, n+1)

	var buckets [256]int
	for _, c := range data {
		buckets[c]++
	}
	for i := 1; i < 256; i++ {
		buckets[i] += buckets[i-1]
	}
	copy(buckets[1:], buckets[:255])
	buckets[0] = 0

	for i, c := range data {
		buckets[c]++
		sa[buckets[c]] = i
	}
	sa[0] = n

	for i, c := range data {
		rank[i] = buckets[c]
	}
	rank[n] = 0

	for i := 1; i < 256; i++ {
		if buckets[i] == buckets[i-1]+1 {
			sa[buckets[i]] = -1
		}
	}
	sa[0] = -1

	for h := 1; sa[0] != -(n + 1); h += h {
		var pd int
		i := 0
		for i < n+1 {
			if sa[i] < 0 {
				pd -= sa[i]
				i -= sa[i]
				continue
			}
			if pd != 0 {
				sa[i-pd] = -pd
			}
			pd = rank[sa[i]] + 1 - i
			split(sa, rank, i, pd, h)
			i += pd
			pd = 0
		}
		if pd != 0 {
			sa[i-pd] = -pd
		}
	}

	out := make([]int, n+1)
	for i := 0; i < n+1; i++ {
		out[rank[i]] = i
	}
	return out
}

// split is the ternary-split quicksort step from Larsson & Sadakane's
// "Faster Suffix Sorting", grouping sa[start:start+length] by rank[x+h]
// and updating rank for newly-resolved singleton groups.
func split(sa, rank []int, start, length, h int) {
	if length < 16 {
		insertionSplit(sa, rank, start, length, h)
		return
	}

	pivot := rank[sa[start+length/2]+h]
	var lt, eq int
	for i := start; i < start+length; i++ {
		if rank[sa[i]+h] < pivot {
			lt++
		} else if rank[sa[i]+h] == pivot {
			eq++
		}
	}
	ltEnd := start + lt
	eqEnd := ltEnd + eq

	i, j, k := start, 0, 0
	for i < ltEnd {
		switch {
		case rank[sa[i]+h] < pivot:
			i++
		case rank[sa[i]+h] == pivot:
			sa[i], sa[ltEnd+j] = sa[ltEnd+j], sa[i]
			j++
		default:
			sa[i], sa[eqEnd+k] = sa[eqEnd+k], sa[i]
			k++
		}
	}
	for ltEnd+j < eqEnd {
		if rank[sa[ltEnd+j]+h] == pivot {
			j++
		} else {
			sa[ltEnd+j], sa[eqEnd+k] = sa[eqEnd+k], sa[ltEnd+j]
			k++
		}
	}

	if ltEnd > start {
		split(sa, rank, start, ltEnd-start, h)
	}
	for i := 0; i < eqEnd-ltEnd; i++ {
		rank[sa[ltEnd+i]] = eqEnd - 1
	}
	if ltEnd == eqEnd-1 {
		sa[ltEnd] = -1
	}
	if start+length > eqEnd {
		split(sa, rank, eqEnd, start+length-eqEnd, h)
	}
}

// insertionSplit handles the small-group base case of split: a plain
// insertion sort by rank[x+h], with singleton groups marked resolved.
func insertionSplit(sa, rank []int, start, length, h int) {
	for k := start; k < start+length; {
		groupLen := 1
		pivot := rank[sa[k]+h]
		for i := 1; k+i < start+length; i++ {
			if rank[sa[k+i]+h] < pivot {
				pivot = rank[sa[k+i]+h]
				groupLen = 0
			}
			if rank[sa[k+i]+h] == pivot {
				sa[k+i], sa[k+groupLen] = sa[k+groupLen], sa[k+i]
				groupLen++
			}
		}
		for i := 0; i < groupLen; i++ {
			rank[sa[k+i]] = k + groupLen - 1
		}
		if groupLen == 1 {
			sa[k] = -1
		}
		k += groupLen
	}
}
