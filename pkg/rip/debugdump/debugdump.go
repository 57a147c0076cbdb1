// Package debugdump writes intermediate pipeline planes out as grayscale
// TIFF files for operator QA. It is never on the hot path: the pipeline
// only calls it when a job's Configuration.DebugDumpDir is set.
package debugdump

import (
	"image"
	"os"
	"path/filepath"

	"github.com/hhrutter/tiff"
	"github.com/nocairip/rip/log"
	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/halftone"
	"github.com/nocairip/rip/pkg/rip/mask"
	"github.com/pkg/errors"
)

// ChannelPlane dumps a channel.Plane as "<dir>/<name>_<ch>.tif".
func ChannelPlane(dir, name string, p *channel.Plane) error {
	return writeGray(dir, name+"_"+p.Index.Name(), p.Width, p.Height, p.Pix)
}

// Mask dumps a mask.Mask for channel idx as "<dir>/<name>_<ch>.tif".
func Mask(dir, name string, idx channel.Index, m *mask.Mask) error {
	return writeGray(dir, name+"_"+idx.Name(), m.Width, m.Height, m.Pix)
}

// DotMap dumps a DotMap, scaling its {0,1,2,3} values to {0,85,170,255}
// so the dump is actually visible to a human.
func DotMap(dir, name string, dm *halftone.DotMap) error {
	scaled := make([]byte, len(dm.Dots))
	for i, v := range dm.Dots {
		scaled[i] = v * 85
	}
	return writeGray(dir, name+"_"+dm.Index.Name(), dm.Width, dm.Height, scaled)
}

func writeGray(dir, name string, w, h int, pix []byte) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "debugdump: mkdir")
	}

	img := &image.Gray{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}

	path := filepath.Join(dir, name+".tif")
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "debugdump: create")
	}
	defer f.Close()

	if err := tiff.Encode(f, img, nil); err != nil {
		return errors.Wrap(err, "debugdump: encode")
	}

	log.Debug.Printf("debugdump: wrote %s", path)
	return nil
}
