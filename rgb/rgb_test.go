package rgb

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{0xff, 0x80, 0x00}.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0x8080), g)
	assert.Equal(t, uint32(0x0000), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestModel(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"rgb", Color{1, 2, 3}, Color{1, 2, 3}},
		{"rgba", color.RGBA{0x10, 0x20, 0x30, 0xff}, Color{0x10, 0x20, 0x30}},
		{"gray", color.Gray{0x7f}, Color{0x7f, 0x7f, 0x7f}},
		{"black", color.Black, Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Model.Convert(tt.in))
		})
	}
}

func TestImageSetAt(t *testing.T) {
	m := New(image.Rect(0, 0, 3, 2))
	require.Len(t, m.Pix, 18)
	assert.Equal(t, 9, m.Stride)
	assert.True(t, m.Opaque())

	m.SetRGB(2, 1, Color{1, 2, 3})
	m.Set(0, 0, color.RGBA{4, 5, 6, 0xff})

	assert.Equal(t, Color{1, 2, 3}, m.RGBAt(2, 1))
	assert.Equal(t, Color{4, 5, 6}, m.At(0, 0))
	assert.Equal(t, []uint8{1, 2, 3}, m.Pix[15:18])

	// Writes outside the bounds are ignored
	m.SetRGB(3, 0, Color{9, 9, 9})
	m.SetRGB(-1, 0, Color{9, 9, 9})
	assert.Equal(t, Color{}, m.RGBAt(3, 0))
	for _, v := range m.Pix[3:15] {
		assert.Zero(t, v)
	}
}

func TestSubImage(t *testing.T) {
	m := New(image.Rect(0, 0, 4, 4))
	m.SetRGB(2, 2, Color{7, 8, 9})

	s := m.SubImage(image.Rect(1, 1, 3, 3)).(*Image)
	assert.Equal(t, image.Rect(1, 1, 3, 3), s.Bounds())
	assert.Equal(t, Color{7, 8, 9}, s.RGBAt(2, 2))

	// Shares pixels
	s.SetRGB(1, 1, Color{1, 1, 1})
	assert.Equal(t, Color{1, 1, 1}, m.RGBAt(1, 1))

	assert.True(t, m.SubImage(image.Rect(5, 5, 6, 6)).Bounds().Empty())
}

func TestCrop(t *testing.T) {
	m := New(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			m.SetRGB(x, y, Color{uint8(x), uint8(y), 0})
		}
	}

	c := m.Crop(image.Rect(1, 1, 3, 3))
	require.Equal(t, image.Rect(0, 0, 2, 2), c.Bounds())
	assert.Equal(t, 6, c.Stride)
	assert.Equal(t, Color{1, 1, 0}, c.RGBAt(0, 0))
	assert.Equal(t, Color{2, 2, 0}, c.RGBAt(1, 1))

	// Does not share pixels
	c.SetRGB(0, 0, Color{0xff, 0xff, 0xff})
	assert.Equal(t, Color{1, 1, 0}, m.RGBAt(1, 1))

	// Clipped to the source bounds
	assert.Equal(t, image.Rect(0, 0, 4, 3), m.Crop(image.Rect(-1, -1, 10, 10)).Bounds())
}
