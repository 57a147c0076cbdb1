package channel_test

import (
	"testing"

	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/stretchr/testify/require"
)

func cmykBuffer(w, h int, pix []byte) *model.ImageBuffer {
	return &model.ImageBuffer{
		Width: w, Height: h, Channels: 4, BytesPerSample: 1,
		Interleaved: true, Pix: pix,
	}
}

func TestSeparateIndexing(t *testing.T) {
	w, h := 2, 1
	buf := cmykBuffer(w, h, []byte{
		1, 2, 3, 4, // pixel 0: C=1 M=2 Y=3 K=4
		5, 6, 7, 8, // pixel 1: C=5 M=6 Y=7 K=8
	})

	planes, err := channel.Separate(buf)
	require.NoError(t, err)

	require.Equal(t, []byte{1, 5}, planes[channel.Cyan].Pix)
	require.Equal(t, []byte{2, 6}, planes[channel.Magenta].Pix)
	require.Equal(t, []byte{3, 7}, planes[channel.Yellow].Pix)
	require.Equal(t, []byte{4, 8}, planes[channel.Black].Pix)

	for _, p := range planes {
		require.Len(t, p.Pix, w*h)
	}
}

func TestSeparateRejectsWrongSize(t *testing.T) {
	buf := cmykBuffer(2, 1, make([]byte, 3))
	_, err := channel.Separate(buf)
	require.Error(t, err)
}

func TestSeparateRejectsNonInterleavedOrWrongChannelCount(t *testing.T) {
	buf := cmykBuffer(2, 1, make([]byte, 8))
	buf.Channels = 3
	buf.Pix = make([]byte, 6)
	_, err := channel.Separate(buf)
	require.Error(t, err)
}
