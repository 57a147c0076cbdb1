// Package halftone classifies a channel plane into a variable-sized dot
// map by thresholding against its blue-noise mask.
package halftone

import (
	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/mask"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/pkg/errors"
)

// DotMap is a per-channel dot-size plane, values in {0,1,2,3} where 3 is
// the largest dot. Produced here, mutated in place by the promoter, and
// consumed by the packer.
type DotMap struct {
	Index  channel.Index
	Width  int
	Height int
	Dots   []byte
}

// Dot size classes.
const (
	DotNone   byte = 0
	DotSmall  byte = 1
	DotMedium byte = 2
	DotLarge  byte = 3
)

// Threshold bands the mask value against.
const (
	smallBand  = 192 // t >= 192 -> small
	mediumBand = 128 // 128 <= t < 192 -> medium; t < 128 -> large
)

// Classify produces a DotMap from a channel plane and its prepared mask.
// Ties (I[p] == T[p]) count as inked.
func Classify(p *channel.Plane, m *mask.Mask) (*DotMap, error) {
	if p.Width != m.Width || p.Height != m.Height {
		return nil, errors.Wrapf(model.ErrInternal, "halftone: plane %dx%d vs mask %dx%d", p.Width, p.Height, m.Width, m.Height)
	}

	dm := &DotMap{Index: p.Index, Width: p.Width, Height: p.Height, Dots: make([]byte, p.Width*p.Height)}

	for i, v := range p.Pix {
		t := m.Pix[i]
		if v < t {
			dm.Dots[i] = DotNone
			continue
		}
		switch {
		case t >= smallBand:
			dm.Dots[i] = DotSmall
		case t >= mediumBand:
			dm.Dots[i] = DotMedium
		default:
			dm.Dots[i] = DotLarge
		}
	}

	return dm, nil
}
