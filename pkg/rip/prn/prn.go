// Package prn writes the 48-byte Nocai PRN header and the row-interleaved
// packed scan lines behind it.
package prn

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/nocairip/rip/log"
	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/nocairip/rip/pkg/rip/pack"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// Signature is the fixed little-endian u32 magic at header offset 0.
const Signature uint32 = 0x00005555

// HeaderSize is the fixed size in bytes of the PRN header.
const HeaderSize = 48

// emissionOrder is the firmware-mandated channel write order: Y, M, C, K.
var emissionOrder = [4]channel.Index{channel.Yellow, channel.Magenta, channel.Cyan, channel.Black}

// Header mirrors the 12 little-endian u32 words written at the start of
// every PRN file.
type Header struct {
	Signature    uint32
	XDPI         uint32
	YDPI         uint32
	BytesPerLine uint32
	Height       uint32
	Width        uint32
	PaperWidth   uint32
	Channels     uint32
	Bits         uint32
	Pass         uint32
	VSDMode      uint32
	Reserved     uint32
}

func (h Header) words() [12]uint32 {
	return [12]uint32{
		h.Signature, h.XDPI, h.YDPI, h.BytesPerLine,
		h.Height, h.Width, h.PaperWidth, h.Channels,
		h.Bits, h.Pass, h.VSDMode, h.Reserved,
	}
}

// NewHeader builds the header for one job from the common packed row
// length and image geometry. Channels/Bits/Pass/VSDMode/PaperWidth are
// fixed by firmware convention.
func NewHeader(xdpi, ydpi, bytesPerLine, width, height uint32) Header {
	return Header{
		Signature:    Signature,
		XDPI:         xdpi,
		YDPI:         ydpi,
		BytesPerLine: bytesPerLine,
		Height:       height,
		Width:        width,
		PaperWidth:   0,
		Channels:     4,
		Bits:         1,
		Pass:         1,
		VSDMode:      0,
		Reserved:     0,
	}
}

// WriteHeader writes the 48-byte header to w.
func WriteHeader(w io.Writer, h Header) error {
	words := h.words()
	buf := make([]byte, HeaderSize)
	for i, word := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], word)
	}
	_, err := w.Write(buf)
	return err
}

// ReadHeader decodes a 48-byte header, the inverse of WriteHeader --
// used by round-trip tests and by any caller that wants to verify a
// file it didn't just produce.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, err
	}
	var words [12]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return Header{
		Signature: words[0], XDPI: words[1], YDPI: words[2], BytesPerLine: words[3],
		Height: words[4], Width: words[5], PaperWidth: words[6], Channels: words[7],
		Bits: words[8], Pass: words[9], VSDMode: words[10], Reserved: words[11],
	}, nil
}

// Write emits the complete PRN stream to path: the header, then for
// every row in [0,H) the four channels' packed rows in Y,M,C,K order.
// On any failure the partially written output file is removed so the
// output path is either completely written or absent.
//
// Write returns the BLAKE2b-256 digest of everything written after the
// header, so the caller can log it for traceability without re-reading
// the file.
func Write(path string, xdpi, ydpi uint32, planes [4]*pack.Plane) (digest [32]byte, err error) {
	bytesPerLine := planes[0].BytesPerLine
	width := uint32(planes[0].Width)
	height := uint32(planes[0].Height)

	for k := 1; k < 4; k++ {
		if planes[k].BytesPerLine != bytesPerLine {
			return digest, errors.Wrapf(model.ErrInternal, "prn write: channel %d bytesPerLine=%d, want %d", k, planes[k].BytesPerLine, bytesPerLine)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return digest, errors.Wrap(model.ErrIO, err.Error())
	}

	success := false
	defer func() {
		f.Close()
		if !success {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	h2, _ := blake2b.New256(nil)
	mw := io.MultiWriter(bw, h2)

	header := NewHeader(xdpi, ydpi, uint32(bytesPerLine), width, height)
	if err := WriteHeader(bw, header); err != nil {
		return digest, errors.Wrap(model.ErrIO, err.Error())
	}

	if err := writeBody(mw, planes, int(height)); err != nil {
		return digest, err
	}

	if err := bw.Flush(); err != nil {
		return digest, errors.Wrap(model.ErrIO, err.Error())
	}
	if err := f.Sync(); err != nil {
		return digest, errors.Wrap(model.ErrIO, err.Error())
	}

	success = true
	copy(digest[:], h2.Sum(nil))
	log.Stats.Printf("prn: wrote %s (%d bytes body, digest %x)", path, int(height)*4*bytesPerLine, digest)
	return digest, nil
}

func writeBody(w io.Writer, planes [4]*pack.Plane, height int) error {
	for r := 0; r < height; r++ {
		for _, idx := range emissionOrder {
			row := planes[idx].Rows[r]
			if _, err := w.Write(row); err != nil {
				return errors.Wrap(model.ErrIO, err.Error())
			}
		}
	}
	return nil
}
