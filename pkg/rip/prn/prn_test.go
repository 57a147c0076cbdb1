package prn_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/nocairip/rip/pkg/rip/channel"
	"github.com/nocairip/rip/pkg/rip/halftone"
	"github.com/nocairip/rip/pkg/rip/pack"
	"github.com/nocairip/rip/pkg/rip/prn"
	"github.com/stretchr/testify/require"
)

func onePxPlane(idx channel.Index, w, h int, dots []byte) *pack.Plane {
	return pack.Pack(&halftone.DotMap{Index: idx, Width: w, Height: h, Dots: dots})
}

func TestWriteHeaderRoundTrip(t *testing.T) {
	h := prn.NewHeader(600, 600, 4, 4, 1)
	var buf bytes.Buffer
	require.NoError(t, prn.WriteHeader(&buf, h))
	require.Equal(t, prn.HeaderSize, buf.Len())

	got, err := prn.ReadHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestMinimalHeaderCheck(t *testing.T) {
	// Scenario 1: a 4x1 image at 600x600 DPI produces the expected
	// 12-word header and a 64-byte total file (48-byte header plus 4
	// channels x 4-byte rows).
	dots := []byte{0, 0, 0, 0}
	planes := [4]*pack.Plane{}
	for _, idx := range []channel.Index{channel.Cyan, channel.Magenta, channel.Yellow, channel.Black} {
		planes[idx] = onePxPlane(idx, 4, 1, dots)
	}

	dir := t.TempDir()
	path := dir + "/out.prn"
	_, err := prn.Write(path, 600, 600, planes)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 64)

	hdr, err := prn.ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, prn.Header{
		Signature: 0x5555, XDPI: 600, YDPI: 600, BytesPerLine: 4,
		Height: 1, Width: 4, PaperWidth: 0, Channels: 4,
		Bits: 1, Pass: 1, VSDMode: 0, Reserved: 0,
	}, hdr)
}

func TestChannelInterleaveOrder(t *testing.T) {
	// Scenario 4: body bytes after the header appear in Y, M, C, K order
	// per row, each channel tagged with a distinct fill byte.
	planes := [4]*pack.Plane{
		channel.Cyan:    onePxPlane(channel.Cyan, 4, 1, []byte{3, 3, 3, 3}),
		channel.Magenta: onePxPlane(channel.Magenta, 4, 1, []byte{2, 2, 2, 2}),
		channel.Yellow:  onePxPlane(channel.Yellow, 4, 1, []byte{1, 1, 1, 1}),
		channel.Black:   onePxPlane(channel.Black, 4, 1, []byte{0, 0, 0, 0}),
	}

	dir := t.TempDir()
	path := dir + "/out.prn"
	_, err := prn.Write(path, 300, 300, planes)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := data[prn.HeaderSize:]

	require.Equal(t, []byte{0x55, 0, 0, 0}, body[0:4])  // Y first
	require.Equal(t, []byte{0xAA, 0, 0, 0}, body[4:8])  // M
	require.Equal(t, []byte{0xFF, 0, 0, 0}, body[8:12]) // C
	require.Equal(t, []byte{0, 0, 0, 0}, body[12:16])   // K last
}

func TestWriteRemovesPartialFileOnMismatch(t *testing.T) {
	planes := [4]*pack.Plane{
		channel.Cyan:    onePxPlane(channel.Cyan, 4, 1, []byte{0, 0, 0, 0}),
		channel.Magenta: onePxPlane(channel.Magenta, 4, 1, []byte{0, 0, 0, 0}),
		channel.Yellow:  onePxPlane(channel.Yellow, 4, 1, []byte{0, 0, 0, 0}),
		channel.Black:   onePxPlane(channel.Black, 17, 1, make([]byte, 17)),
	}

	dir := t.TempDir()
	path := dir + "/out.prn"
	_, err := prn.Write(path, 600, 600, planes)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}
