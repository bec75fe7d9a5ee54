// Package patch implements the BSDIFF40 patch container: the 32-byte
// header, the three independently bzip2-compressed sections, and the
// applier that inverts them. Compression is not
// swappable — the wire format name "BSDIFF40" is a contract, and bzip2
// is part of it — but Go's standard library only decodes bzip2, so this
// package uses github.com/dsnet/compress/bzip2 for both directions,
// matching what production Go bsdiff ports reach for when they need a
// programmatic encoder (see DESIGN.md).
package patch

import (
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/pkg/errors"

	"github.com/twotwotwo/bsdiff/alloc"
	"github.com/twotwotwo/bsdiff/bsdiff"
	"github.com/twotwotwo/bsdiff/intcodec"
)

// Magic is the fixed 8-byte identifier every BSDIFF40 patch starts with.
const Magic = "BSDIFF40"

// HeaderSize is the width of the fixed header preceding the three
// compressed sections.
const HeaderSize = 32

// Pack runs the diff engine (package bsdiff) over S and T, then writes a
// complete patch to w.
func Pack(S, T []byte, cfg bsdiff.Config, w io.Writer) error {
	controls, err := bsdiff.Compare(S, T, cfg)
	if err != nil {
		return err
	}
	return PackControls(S, T, controls, cfg, w)
}

// PackControls writes a complete patch directly from a precomputed
// control stream, for callers that already ran the match walker
// themselves (tests, or a caller diffing against a cached control set).
func PackControls(S, T []byte, controls []bsdiff.Control, cfg bsdiff.Config, w io.Writer) error {
	var ctrlBuf, deltaBuf, extraBuf bytes.Buffer

	ctrlEnc, err := newEncoder(&ctrlBuf, cfg.CompressionLevel)
	if err != nil {
		return errors.Wrap(err, "patch: control encoder")
	}
	deltaEnc, err := newEncoder(&deltaBuf, cfg.CompressionLevel)
	if err != nil {
		return errors.Wrap(err, "patch: delta encoder")
	}
	extraEnc, err := newEncoder(&extraBuf, cfg.CompressionLevel)
	if err != nil {
		return errors.Wrap(err, "patch: extra encoder")
	}

	var spos, tpos int
	var rec [intcodec.Size * 3]byte
	var deltaChunk []byte

	for _, c := range controls {
		intcodec.Encode(rec[0:8], int64(c.Add))
		intcodec.Encode(rec[8:16], int64(c.Copy))
		intcodec.Encode(rec[16:24], c.Seek)
		if _, err := ctrlEnc.Write(rec[:24]); err != nil {
			return errors.Wrap(err, "patch: write control record")
		}

		remaining := c.Add
		for remaining > 0 {
			k := remaining
			if k > uint64(cfg.BufferSize) {
				k = uint64(cfg.BufferSize)
			}
			deltaChunk = alloc.Bytes(deltaChunk, int(k), cfg.BufferSize)
			for i := uint64(0); i < k; i++ {
				deltaChunk[i] = T[tpos+int(i)] - S[spos+int(i)]
			}
			if _, err := deltaEnc.Write(deltaChunk); err != nil {
				return errors.Wrap(err, "patch: write delta")
			}
			spos += int(k)
			tpos += int(k)
			remaining -= k
		}

		if c.Copy > 0 {
			if _, err := extraEnc.Write(T[tpos : tpos+int(c.Copy)]); err != nil {
				return errors.Wrap(err, "patch: write extra")
			}
			tpos += int(c.Copy)
		}

		spos += int(c.Seek)
	}

	if err := ctrlEnc.Close(); err != nil {
		return errors.Wrap(err, "patch: close control encoder")
	}
	if err := deltaEnc.Close(); err != nil {
		return errors.Wrap(err, "patch: close delta encoder")
	}
	if err := extraEnc.Close(); err != nil {
		return errors.Wrap(err, "patch: close extra encoder")
	}

	var header [HeaderSize]byte
	copy(header[0:8], Magic)
	intcodec.Encode(header[8:16], int64(ctrlBuf.Len()))
	intcodec.Encode(header[16:24], int64(deltaBuf.Len()))
	intcodec.Encode(header[24:32], int64(len(T)))

	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "patch: write header")
	}
	if _, err := w.Write(ctrlBuf.Bytes()); err != nil {
		return errors.Wrap(err, "patch: write control section")
	}
	if _, err := w.Write(deltaBuf.Bytes()); err != nil {
		return errors.Wrap(err, "patch: write delta section")
	}
	if _, err := w.Write(extraBuf.Bytes()); err != nil {
		return errors.Wrap(err, "patch: write extra section")
	}
	return nil
}

func newEncoder(w io.Writer, level int) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
}

func newDecoder(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}
