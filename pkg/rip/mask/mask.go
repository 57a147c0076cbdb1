// Package mask loads and prepares the four per-channel blue-noise
// threshold masks a Job needs: load, tile-to-fit with randomized tile
// rotation, crop, and per-channel circular roll.
package mask

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"os"

	"github.com/hhrutter/tiff"
	"github.com/nocairip/rip/log"
	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/pkg/errors"
)

// Mask is an 8-bit grayscale threshold plane, logically (Width, Height)
// after tiling/cropping and per-channel roll, read-only for the rest of
// the pipeline.
type Mask struct {
	Width  int
	Height int
	Pix    []byte
}

// channelOffset returns the (offsetX, offsetY) roll applied to channel k:
// channel k uses (64k, 64k).
func channelOffset(k channel.Index) (int, int) {
	off := 64 * int(k)
	return off, off
}

// Load reads the four mask files (indexed C,M,Y,K) and returns each
// expanded/rolled to exactly (w,h). seed drives the tile-rotation RNG;
// seed==0 draws from a process-random source, at the cost of
// run-to-run reproducibility -- pass a nonzero seed for byte-identical
// golden-file tests.
func Load(paths [4]string, w, h int, seed int64) ([4]*Mask, error) {
	var out [4]*Mask

	rng := newRNG(seed)

	for k := 0; k < 4; k++ {
		tile, err := decodeGray(paths[k])
		if err != nil {
			return out, errors.Wrapf(model.ErrMaskLoad, "channel %s: %v", channel.Index(k).Name(), err)
		}
		if (tile.width != w || tile.height != h) && tile.width != tile.height {
			return out, errors.Wrapf(model.ErrMaskLoad, "channel %s: %dx%d tile is not square", channel.Index(k).Name(), tile.width, tile.height)
		}

		fitted := fitToSize(tile, w, h, rng)
		offX, offY := channelOffset(channel.Index(k))
		rolled := roll(fitted, w, h, offX, offY)

		out[k] = &Mask{Width: w, Height: h, Pix: rolled}
		log.Debug.Printf("mask: channel %s ready at %dx%d (roll %d,%d)", channel.Index(k).Name(), w, h, offX, offY)
	}

	return out, nil
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

type grayTile struct {
	width, height int
	pix           []byte
}

func decodeGray(path string) (*grayTile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	if isTIFF(path) {
		img, err = tiff.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			gr, _, _, _ := c.RGBA()
			pix[y*w+x] = byte(gr >> 8)
		}
	}

	return &grayTile{width: w, height: h, pix: pix}, nil
}

func isTIFF(path string) bool {
	n := len(path)
	return n >= 4 && (path[n-4:] == ".tif" || (n >= 5 && path[n-5:] == ".tiff"))
}

// fitToSize returns a (w,h) plane built by tiling t (each tile
// independently rotated by a uniform random 0/90/180/270 choice),
// appended column-wise within a row of tiles and row-wise across rows,
// then cropped to (w,h). If t is already (w,h) it is returned unchanged.
func fitToSize(t *grayTile, w, h int, rng *rand.Rand) []byte {
	if t.width == w && t.height == h {
		out := make([]byte, w*h)
		copy(out, t.pix)
		return out
	}

	tw, th := t.width, t.height
	countX := (w + tw - 1) / tw
	countY := (h + th - 1) / th

	compW := countX * tw
	compH := countY * th
	composite := make([]byte, compW*compH)

	for ty := 0; ty < countY; ty++ {
		for tx := 0; tx < countX; tx++ {
			rotated := rotateTile(t, rng.Intn(4))
			originX := tx * tw
			originY := ty * th
			for y := 0; y < th; y++ {
				dst := composite[(originY+y)*compW+originX : (originY+y)*compW+originX+tw]
				src := rotated[y*tw : y*tw+tw]
				copy(dst, src)
			}
		}
	}

	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(out[y*w:(y+1)*w], composite[y*compW:y*compW+w])
	}
	return out
}

// rotateTile rotates a grayTile by quarter*90 degrees clockwise. Blue
// noise tiles are square, so rotation preserves the tile's dimensions.
func rotateTile(t *grayTile, quarter int) []byte {
	n := t.width
	out := make([]byte, len(t.pix))

	switch quarter % 4 {
	case 0:
		copy(out, t.pix)
	case 1: // 90 clockwise
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				out[y*n+x] = t.pix[(n-1-x)*n+y]
			}
		}
	case 2: // 180
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				out[y*n+x] = t.pix[(n-1-y)*n+(n-1-x)]
			}
		}
	case 3: // 270 clockwise
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				out[y*n+x] = t.pix[x*n+(n-1-y)]
			}
		}
	}
	return out
}

// roll circularly shifts a (w,h) plane by (offX, offY): the sample that
// was at (x,y) moves to ((x+offX) mod w, (y+offY) mod h).
func roll(pix []byte, w, h, offX, offY int) []byte {
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		ny := mod(y+offY, h)
		for x := 0; x < w; x++ {
			nx := mod(x+offX, w)
			out[ny*w+nx] = pix[y*w+x]
		}
	}
	return out
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
