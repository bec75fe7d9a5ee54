package patch

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/twotwotwo/bsdiff/bserr"
	"github.com/twotwotwo/bsdiff/intcodec"
)

// addChunkSize bounds how much of a single control's add/copy run is
// decoded and written per iteration.
const addChunkSize = 32 * 1024

// Apply parses patch as a BSDIFF40 patch and writes the reconstructed
// target to w, reading source bytes from S: header and section-size
// validation, the three independent decompressors, and the add/copy/seek
// replay loop.
func Apply(S []byte, patch []byte, w io.Writer) error {
	if len(patch) < HeaderSize {
		return bserr.InvalidData("patch shorter than header")
	}
	if string(patch[0:8]) != Magic {
		return bserr.InvalidData("bad magic")
	}

	csize := intcodec.Decode(patch[8:16])
	dsize := intcodec.Decode(patch[16:24])
	tsize := intcodec.Decode(patch[24:32])
	if csize < 0 || dsize < 0 || tsize < 0 {
		return bserr.InvalidData("negative section size in header")
	}

	body := patch[HeaderSize:]
	if csize > int64(len(body)) {
		return bserr.InvalidData("control section exceeds patch length")
	}
	ctrlSection := body[:csize]
	rest := body[csize:]
	if dsize > int64(len(rest)) {
		return bserr.InvalidData("delta section exceeds patch length")
	}
	deltaSection := rest[:dsize]
	extraSection := rest[dsize:]

	ctrlDec, err := newDecoder(bytes.NewReader(ctrlSection))
	if err != nil {
		return errors.Wrap(err, "patch: control decoder")
	}
	defer ctrlDec.Close()
	deltaDec, err := newDecoder(bytes.NewReader(deltaSection))
	if err != nil {
		return errors.Wrap(err, "patch: delta decoder")
	}
	defer deltaDec.Close()
	extraDec, err := newDecoder(bytes.NewReader(extraSection))
	if err != nil {
		return errors.Wrap(err, "patch: extra decoder")
	}
	defer extraDec.Close()

	var spos, tpos int64
	var buf [addChunkSize]byte

	for {
		var rec [24]byte
		n, rerr := io.ReadFull(ctrlDec, rec[:])
		if rerr == io.EOF && n == 0 {
			break
		}
		if rerr != nil {
			return bserr.UnexpectedEOF("truncated control record")
		}

		add := intcodec.Decode(rec[0:8])
		cp := intcodec.Decode(rec[8:16])
		seek := intcodec.Decode(rec[16:24])
		if add < 0 || cp < 0 {
			return bserr.InvalidData("negative add/copy length")
		}

		if tpos+add > tsize {
			return bserr.InvalidData("add would exceed declared target size")
		}
		if spos+add > int64(len(S)) {
			return bserr.InvalidData("add would read past end of source")
		}
		remaining := add
		for remaining > 0 {
			k := remaining
			if k > addChunkSize {
				k = addChunkSize
			}
			if _, rerr := io.ReadFull(deltaDec, buf[:k]); rerr != nil {
				return bserr.UnexpectedEOF("delta stream underflow")
			}
			for i := int64(0); i < k; i++ {
				buf[i] += S[spos+i]
			}
			if _, werr := w.Write(buf[:k]); werr != nil {
				return errors.Wrap(werr, "patch: sink write")
			}
			spos += k
			tpos += k
			remaining -= k
		}

		if tpos+cp > tsize {
			return bserr.InvalidData("copy would exceed declared target size")
		}
		remaining = cp
		for remaining > 0 {
			k := remaining
			if k > addChunkSize {
				k = addChunkSize
			}
			if _, rerr := io.ReadFull(extraDec, buf[:k]); rerr != nil {
				return bserr.UnexpectedEOF("extra stream underflow")
			}
			if _, werr := w.Write(buf[:k]); werr != nil {
				return errors.Wrap(werr, "patch: sink write")
			}
			tpos += k
			remaining -= k
		}

		spos += seek
		if spos < 0 || spos > int64(len(S)) {
			return bserr.InvalidData("seek out of source bounds")
		}
	}

	if tpos != tsize {
		return bserr.UnexpectedEOF("control stream ended before declared target size")
	}
	return nil
}
