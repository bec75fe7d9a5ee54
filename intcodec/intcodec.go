// Public domain, Randall Farmer, 2013; bsdiff integer codec added 2024.

// Package intcodec implements the signed-magnitude 8-byte integer
// encoding used throughout the bsdiff 4.x wire format: header sizes and
// the three fields of every control record.
//
// This is deliberately not two's complement. The sign lives in the high
// bit of the last byte, the magnitude is little-endian in the rest, and
// the all-sign-bit encoding decodes to zero (there is a "negative zero").
package intcodec

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Size is the encoded width of every integer in the wire format.
const Size = 8

const signBit = uint64(1) << 63

// Encode writes the signed-magnitude encoding of x into b, which must be
// at least Size bytes long.
func Encode(b []byte, x int64) {
	var mag uint64
	if x < 0 {
		mag = uint64(-x)
	} else {
		mag = uint64(x)
	}
	binary.LittleEndian.PutUint64(b, mag)
	if x < 0 {
		b[7] |= 0x80
	}
}

// Bytes returns the 8-byte signed-magnitude encoding of x.
func Bytes(x int64) [Size]byte {
	var b [Size]byte
	Encode(b[:], x)
	return b
}

// Decode reads a signed-magnitude integer from the first Size bytes of b.
// The encoding with only the sign bit set (negative zero) decodes to 0.
func Decode(b []byte) int64 {
	v := binary.LittleEndian.Uint64(b)
	mag := v &^ signBit
	if v&signBit == 0 {
		return int64(mag)
	}
	return -int64(mag)
}

// WriteTo encodes x and writes it to w.
func WriteTo(w io.Writer, x int64) error {
	var b [Size]byte
	Encode(b[:], x)
	_, err := w.Write(b[:])
	return errors.Wrap(err, "intcodec: write")
}

// ReadFrom reads and decodes one integer from r. It returns io.EOF only
// when zero bytes were read before the end of stream; a partial read
// surfaces io.ErrUnexpectedEOF.
func ReadFrom(r io.Reader) (int64, error) {
	var b [Size]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, err
		}
		return 0, err
	}
	return Decode(b[:]), nil
}
