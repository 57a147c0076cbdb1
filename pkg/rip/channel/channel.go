// Package channel splits an interleaved CMYK buffer into four grayscale
// channel planes.
package channel

import (
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/pkg/errors"
)

// Index identifies one of the four CMYK channels by its position in the
// interleaved buffer produced by the color transform.
type Index int

const (
	Cyan Index = iota
	Magenta
	Yellow
	Black
)

// Name returns a short label for logging/debug dumps.
func (i Index) Name() string {
	switch i {
	case Cyan:
		return "C"
	case Magenta:
		return "M"
	case Yellow:
		return "Y"
	case Black:
		return "K"
	default:
		return "?"
	}
}

// Plane is an 8-bit grayscale plane for a single channel.
type Plane struct {
	Index  Index
	Width  int
	Height int
	Pix    []byte // length Width*Height
}

// Separate splits an interleaved 4-channel ImageBuffer into four Planes,
// where plane k receives byte 4*i+k for i in [0, w*h). Fails if buf
// isn't a valid 4-channel interleaved buffer.
func Separate(buf *model.ImageBuffer) ([4]*Plane, error) {
	var planes [4]*Plane

	if err := buf.Validate(); err != nil {
		return planes, err
	}
	if !buf.Interleaved || buf.Channels != 4 {
		return planes, errors.Wrapf(model.ErrInternal, "channel separation: want a 4-channel interleaved buffer, have channels=%d interleaved=%v", buf.Channels, buf.Interleaved)
	}

	w, h := buf.Width, buf.Height
	for k := 0; k < 4; k++ {
		p := &Plane{Index: Index(k), Width: w, Height: h, Pix: make([]byte, w*h)}
		for i := 0; i < w*h; i++ {
			p.Pix[i] = buf.Pix[4*i+k]
		}
		planes[k] = p
	}

	return planes, nil
}
