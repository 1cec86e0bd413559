package linear

import (
	"encoding/binary"
	"image"
	"testing"

	"github.com/bodgit/fbdecode/pixel"
	"github.com/bodgit/fbdecode/rgb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packed(words ...uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}

func TestDecodePackedContiguous(t *testing.T) {
	const width, height = 5, 3

	words := make([]uint32, width*height)
	for i := range words {
		words[i] = uint32(i)<<16 | uint32(0xff-i)<<8 | uint32(i*3)
	}

	m, err := DecodePacked(packed(words...), width*4, image.Pt(width, height))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, width, height), m.Bounds())

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			assert.Equal(t, pixel.XRGB8888(words[y*width+x]).RGB(), m.RGBAt(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestDecodePackedPadded(t *testing.T) {
	// Two pixels per row followed by one word of padding
	b := packed(
		0x00010203, 0x00040506, 0xdeadbeef,
		0x00070809, 0x000a0b0c, 0xdeadbeef,
	)

	m, err := DecodePacked(b, 12, image.Pt(2, 2))
	require.NoError(t, err)

	assert.Equal(t, rgb.Color{R: 1, G: 2, B: 3}, m.RGBAt(0, 0))
	assert.Equal(t, rgb.Color{R: 4, G: 5, B: 6}, m.RGBAt(1, 0))
	assert.Equal(t, rgb.Color{R: 7, G: 8, B: 9}, m.RGBAt(0, 1))
	assert.Equal(t, rgb.Color{R: 10, G: 11, B: 12}, m.RGBAt(1, 1))

	// The last row's padding is not required
	_, err = DecodePacked(b[:len(b)-4], 12, image.Pt(2, 2))
	assert.NoError(t, err)
}

func TestDecodeRGB565(t *testing.T) {
	m, err := DecodeRGB565([]uint16{0xf800, 0xf800, 0xf800, 0xf800}, 4, image.Pt(2, 2))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 2), m.Bounds())

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, rgb.Color{R: 255}, m.RGBAt(x, y))
		}
	}
}

func TestDecodeRGB565Pitch(t *testing.T) {
	b := []uint16{
		0x001f, 0x07e0, 0x1234,
		0xffff, 0x0000, 0x1234,
	}

	m, err := DecodeRGB565(b, 6, image.Pt(2, 2))
	require.NoError(t, err)

	assert.Equal(t, rgb.Color{B: 255}, m.RGBAt(0, 0))
	assert.Equal(t, rgb.Color{G: 255}, m.RGBAt(1, 0))
	assert.Equal(t, rgb.Color{R: 255, G: 255, B: 255}, m.RGBAt(0, 1))
	assert.Equal(t, rgb.Color{}, m.RGBAt(1, 1))
}

func TestDecodeYUV420(t *testing.T) {
	// 4x2 luma with a pitch of 5, two chroma samples per row with a pitch
	// of 3
	planes := [3][]byte{
		{
			16, 235, 126, 126, 0,
			126, 126, 16, 235, 0,
		},
		{128, 0, 0},
		{128, 255, 0},
	}
	pitches := [3]int{5, 3, 3}

	m, err := DecodeYUV420(planes, pitches, image.Pt(4, 2))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 2), m.Bounds())

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := pixel.YUV{
				Y: planes[0][y*5+x],
				U: planes[1][x/2],
				V: planes[2][x/2],
			}.RGB()
			assert.Equal(t, want, m.RGBAt(x, y), "(%d, %d)", x, y)
		}
	}

	assert.Equal(t, rgb.Color{}, m.RGBAt(0, 0))
	assert.Equal(t, rgb.Color{R: 255, G: 255, B: 255}, m.RGBAt(1, 0))
}

func TestDecodeYUV420OddSize(t *testing.T) {
	// A 3x3 image still needs a 2x2 chroma block
	planes := [3][]byte{
		make([]byte, 9),
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	}

	m, err := DecodeYUV420(planes, [3]int{3, 2, 2}, image.Pt(3, 3))
	require.NoError(t, err)
	assert.Equal(t, pixel.YUV{U: 4, V: 8}.RGB(), m.RGBAt(2, 2))

	planes[1] = planes[1][:3]
	_, err = DecodeYUV420(planes, [3]int{3, 2, 2}, image.Pt(3, 3))
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestDecodeYUV420Half(t *testing.T) {
	planes := [3][]byte{
		{
			10, 20, 100, 100,
			30, 41, 100, 100,
			16, 16, 235, 235,
			16, 16, 235, 235,
		},
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	}
	pitches := [3]int{4, 2, 2}

	m, err := DecodeYUV420Half(planes, pitches, image.Pt(4, 4))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 2), m.Bounds())

	// (10+20+30+41)/4 truncates to 25
	assert.Equal(t, pixel.YUV{Y: 25, U: 1, V: 5}.RGB(), m.RGBAt(0, 0))
	assert.Equal(t, pixel.YUV{Y: 100, U: 2, V: 6}.RGB(), m.RGBAt(1, 0))
	assert.Equal(t, pixel.YUV{Y: 16, U: 3, V: 7}.RGB(), m.RGBAt(0, 1))
	assert.Equal(t, pixel.YUV{Y: 235, U: 4, V: 8}.RGB(), m.RGBAt(1, 1))
}

func TestDecodeErrors(t *testing.T) {
	planes := [3][]byte{make([]byte, 16), make([]byte, 4), make([]byte, 4)}

	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{
			"packed short",
			func() error {
				_, err := DecodePacked(make([]byte, 15), 8, image.Pt(2, 2))
				return err
			},
			ErrBufferTooSmall,
		},
		{
			"packed narrow pitch",
			func() error {
				_, err := DecodePacked(make([]byte, 64), 4, image.Pt(2, 2))
				return err
			},
			ErrInvalidGeometry,
		},
		{
			"packed negative",
			func() error {
				_, err := DecodePacked(nil, 0, image.Pt(-1, 2))
				return err
			},
			ErrInvalidGeometry,
		},
		{
			"packed rows overflow",
			func() error {
				_, err := DecodePacked(make([]byte, 64), maxInt-3, image.Pt(1, 8))
				return err
			},
			ErrInvalidGeometry,
		},
		{
			"packed huge pitch",
			func() error {
				_, err := DecodePacked(make([]byte, 64), maxInt/2, image.Pt(1, 2))
				return err
			},
			ErrBufferTooSmall,
		},
		{
			"rgb565 rows overflow",
			func() error {
				_, err := DecodeRGB565(make([]uint16, 8), maxInt, image.Pt(1, 4))
				return err
			},
			ErrInvalidGeometry,
		},
		{
			"yuv chroma rows overflow",
			func() error {
				_, err := DecodeYUV420(planes, [3]int{4, maxInt, 2}, image.Pt(4, 4))
				return err
			},
			ErrInvalidGeometry,
		},
		{
			"rgb565 short",
			func() error {
				_, err := DecodeRGB565(make([]uint16, 3), 4, image.Pt(2, 2))
				return err
			},
			ErrBufferTooSmall,
		},
		{
			"yuv narrow chroma pitch",
			func() error {
				_, err := DecodeYUV420(planes, [3]int{4, 1, 2}, image.Pt(4, 4))
				return err
			},
			ErrInvalidGeometry,
		},
		{
			"yuv short luma",
			func() error {
				_, err := DecodeYUV420([3][]byte{planes[0][:15], planes[1], planes[2]}, [3]int{4, 2, 2}, image.Pt(4, 4))
				return err
			},
			ErrBufferTooSmall,
		},
		{
			"yuv half short chroma",
			func() error {
				_, err := DecodeYUV420Half([3][]byte{planes[0], planes[1], planes[2][:3]}, [3]int{4, 2, 2}, image.Pt(4, 4))
				return err
			},
			ErrBufferTooSmall,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), tt.want)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	m, err := DecodePacked(nil, 0, image.Pt(0, 0))
	require.NoError(t, err)
	assert.True(t, m.Bounds().Empty())

	m, err = DecodeYUV420Half([3][]byte{}, [3]int{}, image.Pt(1, 1))
	require.NoError(t, err)
	assert.True(t, m.Bounds().Empty())
}
