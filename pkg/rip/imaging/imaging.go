// Package imaging decodes a source image and stages it for the pipeline,
// forcing it to 8-bit true-color sRGB-layout interleaved RGB regardless
// of its on-disk color space.
package imaging

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/nocairip/rip/log"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// Source is a decoded, staged source image: an interleaved RGB8 buffer
// of length 3*Width*Height plus the geometry every later stage needs.
type Source struct {
	Width  int
	Height int
	RGB    []byte // interleaved R,G,B, one byte per sample
}

// Load decodes path into a Source, forcing whatever color model the
// decoder produced into interleaved 8-bit true-color RGB. It fails with
// model.ErrImageLoad if the file cannot be opened or decoded.
func Load(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(model.ErrImageLoad, "open %q: %v", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes r into a Source the same way Load does, for callers
// that already have the bytes in hand (e.g. a staged temp file). A
// decoded image with zero width or height is rejected with
// model.ErrImageLoad rather than handed on as an empty Source.
func Decode(r io.Reader) (*Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(model.ErrImageLoad, "decode: %v", err)
	}
	log.Debug.Printf("imaging: decoded source as %s", format)

	src := fromImage(img)
	if err := validateDimensions(src.Width, src.Height); err != nil {
		return nil, err
	}

	return src, nil
}

// validateDimensions rejects a decoded image with zero width or height
// rather than handing an empty buffer on to the color transform and
// channel separator, which would otherwise silently produce a PRN with
// zero data rows.
func validateDimensions(w, h int) error {
	if w == 0 || h == 0 {
		return errors.Wrapf(model.ErrImageLoad, "decoded image has zero dimensions (%dx%d)", w, h)
	}
	return nil
}

// fromImage forces img into an interleaved RGB8 buffer regardless of its
// native color model, before the buffer ever reaches the color transform.
func fromImage(img image.Image) *Source {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	rgb := make([]byte, 3*w*h)
	for y := 0; y < h; y++ {
		srcRow := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*w]
		dstRow := rgb[y*3*w : (y+1)*3*w]
		for x := 0; x < w; x++ {
			dstRow[x*3] = srcRow[x*4]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}

	return &Source{Width: w, Height: h, RGB: rgb}
}

// Stage copies data into a freshly created temp file inside dir, naming
// it after base, and returns the staged path, so a caller can decode
// from an isolated copy rather than reread the source path it was
// handed.
func Stage(dir, base string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "*-"+base)
	if err != nil {
		return "", errors.Wrap(model.ErrIO, err.Error())
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", errors.Wrap(model.ErrIO, err.Error())
	}

	return f.Name(), nil
}
