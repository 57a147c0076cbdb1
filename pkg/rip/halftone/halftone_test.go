package halftone_test

import (
	"testing"

	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/halftone"
	"github.com/nocairip/rip/pkg/rip/mask"
	"github.com/stretchr/testify/require"
)

func plane(w, h int, pix []byte) *channel.Plane {
	return &channel.Plane{Index: channel.Black, Width: w, Height: h, Pix: pix}
}

func mk(w, h int, pix []byte) *mask.Mask {
	return &mask.Mask{Width: w, Height: h, Pix: pix}
}

func TestClassifyBands(t *testing.T) {
	// I values at 255 for the first three pixels so they survive
	// threshold; mask values cover the three classification bands, and
	// the fourth pixel (I=0) is the none case.
	img := plane(4, 1, []byte{255, 255, 255, 0})
	m := mk(4, 1, []byte{200, 150, 50, 10})

	dm, err := halftone.Classify(img, m)
	require.NoError(t, err)
	require.Equal(t, halftone.DotSmall, dm.Dots[0])  // t=200 >= 192
	require.Equal(t, halftone.DotMedium, dm.Dots[1]) // 128 <= t=150 < 192
	require.Equal(t, halftone.DotLarge, dm.Dots[2])  // t=50 < 128
	require.Equal(t, halftone.DotNone, dm.Dots[3])   // I(0) < T(10)
}

func TestClassifyTieInks(t *testing.T) {
	img := plane(1, 1, []byte{100})
	m := mk(1, 1, []byte{100})

	dm, err := halftone.Classify(img, m)
	require.NoError(t, err)
	require.NotEqual(t, halftone.DotNone, dm.Dots[0])
}

func TestSolidBlackOnKAllLarge(t *testing.T) {
	// Scenario 2: K plane all 255, mask uniform threshold 0 -> 255 >= 0
	// and t < 128, so every dot is large.
	img := plane(8, 1, []byte{255, 255, 255, 255, 255, 255, 255, 255})
	m := mk(8, 1, make([]byte, 8))

	dm, err := halftone.Classify(img, m)
	require.NoError(t, err)
	for _, d := range dm.Dots {
		require.Equal(t, halftone.DotLarge, d)
	}
}

func TestPureWhiteDotMapAllZero(t *testing.T) {
	// Scenario 3: CMYK all zero, any mask value >= 1 means I < T always.
	img := plane(4, 1, make([]byte, 4))
	m := mk(4, 1, []byte{1, 50, 128, 255})

	dm, err := halftone.Classify(img, m)
	require.NoError(t, err)
	for _, d := range dm.Dots {
		require.Equal(t, halftone.DotNone, d)
	}
}

func TestClassifyDimensionMismatch(t *testing.T) {
	img := plane(4, 1, make([]byte, 4))
	m := mk(2, 1, make([]byte, 2))

	_, err := halftone.Classify(img, m)
	require.Error(t, err)
}
