package patch

import (
	"io"

	"github.com/pkg/errors"

	"github.com/twotwotwo/bsdiff/bsdiff"
)

// Encode reads source and target fully into memory and writes a BSDIFF40
// patch to w. Package patch's core loops work over immutable,
// borrowed-read-only slices; Encode/Decode are the io.Reader-facing
// convenience the CLI binaries use instead of shuttling byte slices
// themselves.
func Encode(source, target io.Reader, cfg bsdiff.Config, w io.Writer) error {
	S, err := io.ReadAll(source)
	if err != nil {
		return errors.Wrap(err, "patch: read source")
	}
	T, err := io.ReadAll(target)
	if err != nil {
		return errors.Wrap(err, "patch: read target")
	}
	return Pack(S, T, cfg, w)
}

// Decode reads source and a patch fully into memory and writes the
// reconstructed target to w.
func Decode(source io.Reader, patchR io.Reader, w io.Writer) error {
	S, err := io.ReadAll(source)
	if err != nil {
		return errors.Wrap(err, "patch: read source")
	}
	p, err := io.ReadAll(patchR)
	if err != nil {
		return errors.Wrap(err, "patch: read patch")
	}
	return Apply(S, p, w)
}
