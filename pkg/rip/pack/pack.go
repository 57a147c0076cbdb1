// Package pack packs a DotMap into 2-bits-per-pixel scan lines, padded
// to a 4-byte multiple per line.
package pack

import "github.com/nocairip/rip/pkg/rip/halftone"

// Plane is a packed 2-bpp bitstream for one channel: Rows[r] has length
// BytesPerLine for every r, and BytesPerLine is a multiple of 4.
type Plane struct {
	Width        int
	Height       int
	BytesPerLine int
	Rows         [][]byte
}

// Pack packs dm row by row. For x = 0..W-1, the 2 low-order bits of
// D[y][x] land in bit positions (3 - (x mod 4))*2 and that bit+1 of the
// current byte; a byte is flushed every 4 pixels, and the partial final
// byte of a row (when W isn't a multiple of 4) has its unused low
// pixel-slots left as zero. The row is then padded with zero bytes to a
// 4-byte multiple.
func Pack(dm *halftone.DotMap) *Plane {
	w, h := dm.Width, dm.Height

	packedPerRow := (w + 3) / 4
	bytesPerLine := roundUp4(packedPerRow)

	p := &Plane{Width: w, Height: h, BytesPerLine: bytesPerLine, Rows: make([][]byte, h)}

	for y := 0; y < h; y++ {
		row := make([]byte, bytesPerLine)
		src := dm.Dots[y*w : (y+1)*w]

		for x := 0; x < w; x++ {
			byteIdx := x / 4
			shift := uint((3 - (x % 4)) * 2)
			row[byteIdx] |= (src[x] & 0x3) << shift
		}

		p.Rows[y] = row
	}

	return p
}

func roundUp4(n int) int {
	return (n + 3) &^ 3
}

// Unpack recovers the W*H dot-size values a Plane was packed from. It is
// the inverse of Pack, used by round-trip tests; padding bits beyond
// Width are not part of the recovered output.
func Unpack(p *Plane) []byte {
	out := make([]byte, p.Width*p.Height)
	for y := 0; y < p.Height; y++ {
		row := p.Rows[y]
		for x := 0; x < p.Width; x++ {
			byteIdx := x / 4
			shift := uint((3 - (x % 4)) * 2)
			out[y*p.Width+x] = (row[byteIdx] >> shift) & 0x3
		}
	}
	return out
}
