package model

import "github.com/pkg/errors"

// ImageBuffer is a 2-D pixel plane, interleaved or planar depending on
// the stage that produced it. Width/Height/Channels/BytesPerSample
// describe its layout; Pix is the raw byte backing store.
type ImageBuffer struct {
	Width         int
	Height        int
	Channels      int // samples per pixel
	BytesPerSample int // fixed at 1 throughout this pipeline
	Interleaved   bool
	Pix           []byte
}

// NewInterleavedBuffer allocates a zeroed interleaved ImageBuffer of the
// given width/height/channel count, one byte per sample.
func NewInterleavedBuffer(w, h, channels int) *ImageBuffer {
	return &ImageBuffer{
		Width:          w,
		Height:         h,
		Channels:       channels,
		BytesPerSample: 1,
		Interleaved:    true,
		Pix:            make([]byte, w*h*channels),
	}
}

// Validate checks the buffer's Pix length against its declared geometry.
func (b *ImageBuffer) Validate() error {
	want := b.Width * b.Height * b.Channels * b.BytesPerSample
	if len(b.Pix) != want {
		return errors.Wrapf(ErrInternal, "image buffer: want %d bytes, have %d", want, len(b.Pix))
	}
	return nil
}
