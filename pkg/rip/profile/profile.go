// Package profile opens ICC color profiles as opaque handles.
//
// Open reads the profile bytes from disk and decodes them with
// seehuhn.de/go/icc; the resulting handle is read-only and may be closed
// explicitly or released via a scoped acquisition in the pipeline.
package profile

import (
	"os"

	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/pkg/errors"
	"seehuhn.de/go/icc"
)

// Handle is an opened ICC profile. It is safe to read from multiple
// goroutines once open; it has no mutable state after Open.
type Handle struct {
	Path    string
	Profile *icc.Profile

	closed bool
}

// Open reads path and decodes it as an ICC profile, failing with
// model.ErrProfileOpen if the file is absent, unreadable, or not a valid
// profile.
func Open(path string) (*Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(model.ErrProfileOpen, "read %q: %v", path, err)
	}

	p, err := icc.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(model.ErrProfileOpen, "decode %q: %v", path, err)
	}

	return &Handle{Path: path, Profile: p}, nil
}

// OpenPair opens the input and output profiles a Job requires. If either
// fails to open, both are released and the pipeline fails before any
// transform is created, leaving no partially open handle behind.
func OpenPair(inputPath, outputPath string) (in *Handle, out *Handle, err error) {
	in, err = Open(inputPath)
	if err != nil {
		return nil, nil, err
	}

	out, err = Open(outputPath)
	if err != nil {
		in.Close()
		return nil, nil, err
	}

	return in, out, nil
}

// Close releases the handle. Closing an already-closed or nil handle is
// a no-op, so callers can defer Close unconditionally on every exit path.
func (h *Handle) Close() error {
	if h == nil || h.closed {
		return nil
	}
	h.closed = true
	h.Profile = nil
	return nil
}
