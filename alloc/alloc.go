// Public domain, Randall Farmer, 2013; adapted for bounded reuse buffers, 2024.

// Package alloc grows and reuses byte buffers by doubling capacity
// instead of reallocating on every call, the way the packer's delta
// buffer (bounded by Config.BufferSize) wants to be resized across many
// small writes.
package alloc

// Bytes returns a slice of length size backed by buf's storage if it
// already has room, or a freshly doubled allocation otherwise (doubling
// from cap(buf), or from minCap when buf has no capacity). Pass the
// configured minimum capacity as minCap so small bounded buffers (e.g. a
// bsdiff.Config.BufferSize-sized delta chunk) don't start from an
// oversized default.
func Bytes(buf []byte, size int, minCap int) []byte {
	finalCap := cap(buf)
	if finalCap == 0 {
		finalCap = minCap
	}
	for size > finalCap {
		finalCap *= 2
	}
	if finalCap > cap(buf) {
		return make([]byte, size, finalCap)
	}
	return buf[:size]
}

// CopyBytes copies src into (a possibly regrown) dst and returns the
// resulting slice, sized to len(src).
func CopyBytes(dst []byte, src []byte, minCap int) []byte {
	dst = Bytes(dst, len(src), minCap)
	return dst[:copy(dst, src)]
}

