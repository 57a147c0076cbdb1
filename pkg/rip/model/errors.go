// Package model holds the types and error taxonomy shared across every
// stage of the rip pipeline: the Job description, the Configuration, the
// ImageBuffer each stage passes to the next, and the sentinel errors
// stages wrap to classify a failure.
package model

import "github.com/pkg/errors"

// Sentinel errors for the pipeline's error taxonomy. Stage-level failures
// wrap one of these with errors.Wrap/Wrapf so callers can classify a
// failure with errors.Is while still seeing the underlying cause.
var (
	// ErrImageLoad: the source image could not be decoded.
	ErrImageLoad = errors.New("riperr: cannot decode source image")

	// ErrProfileOpen: an ICC profile could not be opened.
	ErrProfileOpen = errors.New("riperr: cannot open ICC profile")

	// ErrColorTransform: the color transform could not be built or applied.
	ErrColorTransform = errors.New("riperr: color transform failed")

	// ErrMaskLoad: a threshold mask file is missing or undecodable.
	ErrMaskLoad = errors.New("riperr: cannot load threshold mask")

	// ErrIO: the output path is not writable, or a short write/disk error occurred.
	ErrIO = errors.New("riperr: i/o failure")

	// ErrState: an operation was invoked out of the Empty->Loaded->Transformed->Written order.
	ErrState = errors.New("riperr: pipeline invoked out of order")

	// ErrInternal: a size/consistency invariant was violated. Should be unreachable.
	ErrInternal = errors.New("riperr: internal invariant violation")
)
