package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nocairip/rip/pkg/rip/imaging"
	"github.com/stretchr/testify/require"
)

func TestDecodeForcesInterleavedRGB(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.Gray{Y: 10})
	img.Set(1, 0, color.Gray{Y: 200})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	src, err := imaging.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, src.Width)
	require.Equal(t, 1, src.Height)
	require.Len(t, src.RGB, 3*2*1)
}
