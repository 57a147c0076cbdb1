package pack_test

import (
	"testing"

	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/halftone"
	"github.com/nocairip/rip/pkg/rip/pack"
	"github.com/stretchr/testify/require"
)

func dotMap(w, h int, dots []byte) *halftone.DotMap {
	return &halftone.DotMap{Index: channel.Black, Width: w, Height: h, Dots: dots}
}

func TestPackBytesPerLineIsMultipleOf4(t *testing.T) {
	for _, w := range []int{1, 2, 3, 4, 5, 7, 8, 17} {
		dm := dotMap(w, 1, make([]byte, w))
		p := pack.Pack(dm)
		require.Equal(t, 0, p.BytesPerLine%4, "w=%d", w)
		require.Len(t, p.Rows[0], p.BytesPerLine)
	}
}

func TestPackRoundTrip(t *testing.T) {
	w, h := 6, 1
	dots := []byte{0, 1, 2, 3, 1, 2}
	dm := dotMap(w, h, dots)

	p := pack.Pack(dm)
	require.Equal(t, dots, pack.Unpack(p)[:w])
}

func TestPackNonMultipleOf4PadsWithZero(t *testing.T) {
	// W=5: 2 packed bytes needed (4 pixels then 1), rounded to 4.
	dots := []byte{3, 3, 3, 3, 3}
	dm := dotMap(5, 1, dots)
	p := pack.Pack(dm)

	require.Equal(t, 4, p.BytesPerLine)
	require.Equal(t, byte(0xFF), p.Rows[0][0])
	// second byte: pixel 4 occupies the high bits, low bits are zero.
	require.Equal(t, byte(0xC0), p.Rows[0][1])
	require.Equal(t, byte(0), p.Rows[0][2])
	require.Equal(t, byte(0), p.Rows[0][3])
}

func TestSolidBlackOnK(t *testing.T) {
	// Scenario 2: 8x1 K plane all dots=3 (large).
	dots := make([]byte, 8)
	for i := range dots {
		dots[i] = 3
	}
	dm := dotMap(8, 1, dots)
	p := pack.Pack(dm)

	require.Equal(t, []byte{0xFF, 0xFF, 0, 0}, p.Rows[0])
}

func TestPureWhiteAllChannelsZero(t *testing.T) {
	// Scenario 3: every packed row is all zero bytes.
	dm := dotMap(8, 1, make([]byte, 8))
	p := pack.Pack(dm)
	for _, b := range p.Rows[0] {
		require.Equal(t, byte(0), b)
	}
}
