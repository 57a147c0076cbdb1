// Package colortransform builds and applies the RGB8->CMYK8 perceptual
// color transform a Job needs.
package colortransform

import (
	"github.com/nocairip/rip/log"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/nocairip/rip/pkg/rip/profile"
	"github.com/pkg/errors"
	"seehuhn.de/go/icc"
)

// Transform maps 8-bit RGB triplets to 8-bit CMYK quadruplets by routing
// through the Profile Connection Space: input profile device->PCS, then
// output profile PCS->device, both under the perceptual rendering intent.
//
// A Transform references both profiles for its lifetime; it is released
// (along with the profiles) when the pipeline destroys the CMYK buffer
// it produced, or on any failure path.
type Transform struct {
	toPCS     *icc.Transform
	fromPCS   *icc.Transform
}

// New builds a Transform from an already-open input/output profile pair.
// On failure it returns model.ErrColorTransform; the caller remains
// responsible for releasing the profile handles either way.
func New(in, out *profile.Handle) (*Transform, error) {
	toPCS, err := icc.NewTransform(in.Profile, icc.DeviceToPCS, icc.Perceptual)
	if err != nil {
		return nil, errors.Wrapf(model.ErrColorTransform, "build source transform for %q: %v", in.Path, err)
	}

	fromPCS, err := icc.NewTransform(out.Profile, icc.PCSToDevice, icc.Perceptual)
	if err != nil {
		return nil, errors.Wrapf(model.ErrColorTransform, "build destination transform for %q: %v", out.Path, err)
	}

	return &Transform{toPCS: toPCS, fromPCS: fromPCS}, nil
}

// Apply converts an interleaved RGB8 buffer of length 3*w*h into a newly
// allocated interleaved CMYK8 ImageBuffer, byte order C,M,Y,K.
func (t *Transform) Apply(rgb []byte, w, h int) (*model.ImageBuffer, error) {
	wantIn := 3 * w * h
	if len(rgb) != wantIn {
		return nil, errors.Wrapf(model.ErrInternal, "color transform input: want %d bytes, have %d", wantIn, len(rgb))
	}

	out := model.NewInterleavedBuffer(w, h, 4)

	log.Trace.Printf("colortransform: applying perceptual RGB->CMYK over %d pixels", w*h)

	rgbF := make([]float64, 3)
	for i := 0; i < w*h; i++ {
		o := i * 3
		rgbF[0] = float64(rgb[o]) / 255
		rgbF[1] = float64(rgb[o+1]) / 255
		rgbF[2] = float64(rgb[o+2]) / 255

		x, y, z := t.toPCS.ToXYZ(rgbF)
		cmykF := t.fromPCS.FromXYZ(x, y, z)
		if len(cmykF) != 4 {
			return nil, errors.Wrapf(model.ErrColorTransform, "destination profile produced %d components, want 4", len(cmykF))
		}

		co := i * 4
		for k := 0; k < 4; k++ {
			out.Pix[co+k] = clamp8(cmykF[k])
		}
	}

	if err := out.Validate(); err != nil {
		return nil, errors.Wrap(model.ErrColorTransform, err.Error())
	}

	return out, nil
}

func clamp8(v float64) byte {
	v *= 255
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return byte(v + 0.5)
	}
}

// Close releases the transform. It does not release the profile handles
// it was built from -- the caller owns those independently.
func (t *Transform) Close() {
	t.toPCS = nil
	t.fromPCS = nil
}
