// Package bserr defines the error kinds used across the bsdiff wire
// format and diff engine: InvalidArgument for bad inputs or
// out-of-range configuration, and InvalidData and UnexpectedEOF for the
// patch applier. Sink/source I/O errors have no kind here; callers wrap
// them with github.com/pkg/errors where they occur.
//
// Kinds are sentinel values meant to be compared with errors.Is after a
// call-site github.com/pkg/errors.Wrap, the way moby-moby threads typed
// errors up through wrapped layers without losing the original cause.
package bserr

import "github.com/pkg/errors"

// Sentinel error kinds. Wrap these with errors.Wrap/Wrapf at the call
// site to add context; compare with errors.Is at the boundary that needs
// to branch on kind.
var (
	// ErrInvalidArgument marks a caller-supplied precondition violation:
	// source too large, or a configuration value outside its declared
	// range. Surfaced at entry; the engine does not attempt recovery.
	ErrInvalidArgument = errors.New("bsdiff: invalid argument")

	// ErrInvalidData marks a structurally invalid patch: bad magic,
	// or a declared section size that doesn't fit the patch body.
	ErrInvalidData = errors.New("bsdiff: invalid patch data")

	// ErrUnexpectedEOF marks a patch that ends before its control
	// stream says it should: a partial 24-byte control record, or a
	// delta/extra stream that ran dry before a control's demand was met.
	ErrUnexpectedEOF = errors.New("bsdiff: unexpected end of patch")
)

// InvalidArgument wraps msg as an ErrInvalidArgument.
func InvalidArgument(msg string) error {
	return errors.Wrap(ErrInvalidArgument, msg)
}

// InvalidData wraps msg as an ErrInvalidData.
func InvalidData(msg string) error {
	return errors.Wrap(ErrInvalidData, msg)
}

// UnexpectedEOF wraps msg as an ErrUnexpectedEOF.
func UnexpectedEOF(msg string) error {
	return errors.Wrap(ErrUnexpectedEOF, msg)
}
